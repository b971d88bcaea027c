package product

import (
	"context"

	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/product/dto"
)

type Repository interface {
	// Create inserts the product and any initial images in one transaction.
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the product and its images in one transaction.
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*model.Product, error)

	// FindBySlug returns the product with its category and images attached.
	// strictParents additionally requires the parent chain to be published.
	FindBySlug(ctx context.Context, slug string, visibleOnly, strictParents bool) (*model.Product, error)

	// FindByNaturalKey matches on (owning category, name) for idempotent
	// seeding.
	FindByNaturalKey(ctx context.Context, categoryID, name string) (*model.Product, error)

	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	AddImage(ctx context.Context, image *model.ProductImage) error
	ListImages(ctx context.Context, productID string) ([]model.ProductImage, error)

	// AttachImages populates Images on each product in one batch query.
	AttachImages(ctx context.Context, products []model.Product) error
}
