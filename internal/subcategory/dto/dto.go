package dto

import (
	"time"

	"github.com/evimeria/catalog-service/internal/model"
)

type SubCategoryFilters struct {
	VisibleOnly bool
	CategoryID  string // optional: restrict to one owning category
	Page        int
	PageSize    int
}

type SubCategoryResponse struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	IsPublished   bool      `json:"is_published"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromModel(s *model.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:            s.ID,
		CategoryID:    s.CategoryID,
		Name:          s.Name,
		Slug:          s.Slug,
		Description:   s.Description,
		IsPublished:   s.IsPublished,
		ProductsCount: s.ProductsCount,
		CreatedAt:     s.CreatedAt,
	}
}

func FromModels(subs []model.SubCategory) []SubCategoryResponse {
	out := make([]SubCategoryResponse, 0, len(subs))
	for i := range subs {
		out = append(out, FromModel(&subs[i]))
	}
	return out
}
