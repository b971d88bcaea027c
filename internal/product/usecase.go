package product

import (
	"context"

	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/product/dto"
)

type UseCase interface {
	// List applies the viewer's visibility, clamps pagination and returns
	// matching products with images attached, plus the total match count.
	List(ctx context.Context, viewer auth.Viewer, filters *dto.ProductFilters) ([]model.Product, int, error)

	// ListByCategorySlug resolves the category first (NotFound if the viewer
	// cannot see it), then lists its products.
	ListByCategorySlug(ctx context.Context, viewer auth.Viewer, slug string, filters *dto.ProductFilters) ([]model.Product, int, error)

	// ListBySubCategorySlug does the same for a subcategory.
	ListBySubCategorySlug(ctx context.Context, viewer auth.Viewer, slug string, filters *dto.ProductFilters) ([]model.Product, int, error)

	GetBySlug(ctx context.Context, viewer auth.Viewer, slug string) (*model.Product, error)

	// Featured returns the newest featured products, capped at the
	// configured storefront limit.
	Featured(ctx context.Context, viewer auth.Viewer) ([]model.Product, error)

	// Search requires a non-empty query and returns ranked matches.
	Search(ctx context.Context, viewer auth.Viewer, query string, page, pageSize int) ([]model.Product, int, error)

	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) error

	AddImage(ctx context.Context, productID string, input *dto.ProductImageInput) (*model.ProductImage, error)
}
