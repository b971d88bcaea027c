package subcategory

import (
	"context"

	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
)

type UseCase interface {
	// List returns subcategories visible to the viewer, ordered by name.
	// A non-empty categorySlug restricts to that category's subcategories
	// and is NotFound when the viewer cannot see the category.
	List(ctx context.Context, viewer auth.Viewer, categorySlug string, page, pageSize int) ([]model.SubCategory, int, error)

	GetBySlug(ctx context.Context, viewer auth.Viewer, slug string) (*model.SubCategory, error)

	Create(ctx context.Context, input *dto.CreateSubCategoryInput) (*model.SubCategory, error)
	Update(ctx context.Context, id string, input *dto.UpdateSubCategoryInput) (*model.SubCategory, error)
	Delete(ctx context.Context, id string) error
}
