package category

import (
	"context"

	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/model"
)

type UseCase interface {
	// List returns categories the viewer may see, annotated with sellable
	// product counts and ordered by that count descending.
	List(ctx context.Context, viewer auth.Viewer, page, pageSize int) ([]model.Category, int, error)

	// GetBySlug resolves a category for the viewer or returns NotFound.
	GetBySlug(ctx context.Context, viewer auth.Viewer, slug string) (*model.Category, error)

	// Administrative writes. Callers are expected to have checked the admin
	// capability already; these do not consult the visibility filter.
	Create(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	Update(ctx context.Context, id string, input *dto.UpdateCategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}
