package dto

import (
	"github.com/shopspring/decimal"

	"github.com/evimeria/catalog-service/internal/apperr"
)

// SortField enumerates the product columns a client may sort on. Keeping
// this closed and mapping it to columns ourselves keeps client-supplied
// field names out of the query text.
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortName      SortField = "name"
	SortPrice     SortField = "price"
	SortStock     SortField = "stock"
)

// ParseSortField maps a sort_by query value onto the enumeration; empty
// selects the default (creation time).
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "":
		return SortCreatedAt, nil
	case SortCreatedAt, SortUpdatedAt, SortName, SortPrice, SortStock:
		return SortField(s), nil
	default:
		return "", apperr.Validationf("unknown sort field %q", s)
	}
}

// Column returns the qualified column backing the sort field.
func (f SortField) Column() string {
	switch f {
	case SortName:
		return "p.name"
	case SortPrice:
		return "p.price"
	case SortStock:
		return "p.stock"
	case SortUpdatedAt:
		return "p.updated_at"
	default:
		return "p.created_at"
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps a sort_order query value; empty selects descending,
// the storefront default (newest first).
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortDesc, nil
	case SortAsc, SortDesc:
		return SortOrder(s), nil
	default:
		return "", apperr.Validationf("unknown sort order %q", s)
	}
}

// ProductFilters are applied conjunctively by the repository.
type ProductFilters struct {
	// VisibleOnly restricts to available AND published products; set for
	// every non-admin viewer.
	VisibleOnly bool

	CategoryID      string
	CategorySlug    string
	SubCategoryID   string
	SubCategorySlug string

	// Inclusive price bounds.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	// Search matches a case-insensitive substring of name or description.
	Search string

	Featured *bool

	SortBy    SortField
	SortOrder SortOrder

	Page     int
	PageSize int
}
