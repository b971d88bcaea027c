package model

type Category struct {
	BaseModel
	Name        string  `db:"name"`
	Slug        string  `db:"slug"` // globally unique
	Description string  `db:"description"`
	Image       *string `db:"image"` // stored reference, resolved at the edge
	IsPublished bool    `db:"is_published"`

	// ProductsCount is a query annotation (count of sellable products), not a
	// stored column.
	ProductsCount int `db:"products_count"`
}

type SubCategory struct {
	BaseModel
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"` // unique within the owning category only
	Description string `db:"description"`
	IsPublished bool   `db:"is_published"`

	ProductsCount int `db:"products_count"` // annotation

	Category *Category `db:"-"` // joined data
}
