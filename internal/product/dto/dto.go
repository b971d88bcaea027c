package dto

import (
	"time"

	"github.com/shopspring/decimal"

	catdto "github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/media"
	"github.com/evimeria/catalog-service/internal/model"
)

type ProductImageResponse struct {
	ID     string `json:"id"`
	Image  string `json:"image"`
	IsMain bool   `json:"is_main"`
}

// ProductResponse is the list/search shape: the owning category appears as
// id plus denormalized name.
type ProductResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Slug          string                 `json:"slug"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	Stock         int                    `json:"stock"`
	Available     bool                   `json:"available"`
	Featured      bool                   `json:"featured"`
	CategoryID    string                 `json:"category"`
	SubCategoryID *string                `json:"subcategory"`
	CategoryName  string                 `json:"category_name"`
	Images        []ProductImageResponse `json:"images"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ProductDetailResponse nests the full category record.
type ProductDetailResponse struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Slug          string                   `json:"slug"`
	Description   string                   `json:"description"`
	Price         decimal.Decimal          `json:"price"`
	Stock         int                      `json:"stock"`
	Available     bool                     `json:"available"`
	Featured      bool                     `json:"featured"`
	Category      *catdto.CategoryResponse `json:"category"`
	SubCategoryID *string                  `json:"subcategory"`
	Images        []ProductImageResponse   `json:"images"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func imagesFromModel(images []model.ProductImage, r *media.Resolver) []ProductImageResponse {
	out := make([]ProductImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ProductImageResponse{
			ID:     img.ID,
			Image:  r.URL(img.Image),
			IsMain: img.IsMain,
		})
	}
	return out
}

func FromModel(p *model.Product, r *media.Resolver) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		Available:     p.Available,
		Featured:      p.Featured,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		CategoryName:  p.CategoryName,
		Images:        imagesFromModel(p.Images, r),
		CreatedAt:     p.CreatedAt,
	}
}

func FromModels(products []model.Product, r *media.Resolver) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, FromModel(&products[i], r))
	}
	return out
}

func DetailFromModel(p *model.Product, r *media.Resolver) ProductDetailResponse {
	resp := ProductDetailResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		Available:     p.Available,
		Featured:      p.Featured,
		SubCategoryID: p.SubCategoryID,
		Images:        imagesFromModel(p.Images, r),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		cat := catdto.FromModel(p.Category, r)
		resp.Category = &cat
	}
	return resp
}
