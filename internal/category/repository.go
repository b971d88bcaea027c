package category

import (
	"context"

	"github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error

	// Delete removes the category and all owned subcategories, products and
	// product images in one transaction.
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string, visibleOnly bool) (*model.Category, error)

	// FindByName looks a category up by its natural key, for idempotent
	// seeding. Name matching, not slug matching.
	FindByName(ctx context.Context, name string) (*model.Category, error)

	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
}
