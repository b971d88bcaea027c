package dto

type CreateSubCategoryInput struct {
	CategoryID  string `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

type UpdateSubCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}
