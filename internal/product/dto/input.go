package dto

import "github.com/shopspring/decimal"

type ProductImageInput struct {
	Image  string `json:"image" binding:"required"`
	IsMain bool   `json:"is_main"`
}

type CreateProductInput struct {
	CategoryID    string              `json:"category_id" binding:"required"`
	SubCategoryID string              `json:"subcategory_id"`
	Name          string              `json:"name" binding:"required"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	Stock         int                 `json:"stock"`
	Available     bool                `json:"available"`
	Featured      bool                `json:"featured"`
	IsPublished   bool                `json:"is_published"`
	Images        []ProductImageInput `json:"images"`
}

type UpdateProductInput struct {
	CategoryID    string          `json:"category_id" binding:"required"`
	SubCategoryID string          `json:"subcategory_id"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Available     bool            `json:"available"`
	Featured      bool            `json:"featured"`
	IsPublished   bool            `json:"is_published"`
}
