package subcategory

import (
	"context"

	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
)

type Repository interface {
	Create(ctx context.Context, sub *model.SubCategory) error
	Update(ctx context.Context, sub *model.SubCategory) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*model.SubCategory, error)

	// FindBySlug resolves a subcategory by slug alone. Slugs are only unique
	// within a category; with strictParent the owning category must also be
	// published.
	FindBySlug(ctx context.Context, slug string, visibleOnly, strictParent bool) (*model.SubCategory, error)

	// FindByNaturalKey matches on (owning category, name), the idempotent
	// seeding key.
	FindByNaturalKey(ctx context.Context, categoryID, name string) (*model.SubCategory, error)

	FindAll(ctx context.Context, filters *dto.SubCategoryFilters) ([]model.SubCategory, int, error)
}
