package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	CategoryID    string  `db:"category_id"`
	SubCategoryID *string `db:"subcategory_id"` // Nullable
	Name          string  `db:"name"`
	Slug          string  `db:"slug"` // globally unique
	Description   string  `db:"description"`

	Price decimal.Decimal `db:"price"`
	Stock int             `db:"stock"`

	// Available and IsPublished are independent axes: stock/business
	// availability versus editorial visibility. Both must hold for the
	// product to be sellable anonymously.
	Available   bool `db:"available"`
	Featured    bool `db:"featured"`
	IsPublished bool `db:"is_published"`

	// CategoryName is a query annotation for list views.
	CategoryName string `db:"category_name"`

	Images   []ProductImage `db:"-"`
	Category *Category      `db:"-"` // joined data for detail views
}

type ProductImage struct {
	ID        string    `db:"id"`
	ProductID string    `db:"product_id"`
	Image     string    `db:"image"` // stored reference
	IsMain    bool      `db:"is_main"`
	CreatedAt time.Time `db:"created_at"`
}
