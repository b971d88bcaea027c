package dto

import (
	"time"

	"github.com/evimeria/catalog-service/internal/media"
	"github.com/evimeria/catalog-service/internal/model"
)

type CategoryFilters struct {
	// VisibleOnly restricts the result to published categories. Admin viewers
	// query with it unset.
	VisibleOnly bool
	Page        int
	PageSize    int
}

type CategoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	IsPublished   bool      `json:"is_published"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromModel(c *model.Category, r *media.Resolver) CategoryResponse {
	image := ""
	if c.Image != nil {
		image = r.URL(*c.Image)
	}
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		Image:         image,
		IsPublished:   c.IsPublished,
		ProductsCount: c.ProductsCount,
		CreatedAt:     c.CreatedAt,
	}
}

func FromModels(cats []model.Category, r *media.Resolver) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, FromModel(&cats[i], r))
	}
	return out
}
