package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/config"
	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/cache"
	"github.com/evimeria/catalog-service/internal/category"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/product"
	"github.com/evimeria/catalog-service/internal/product/dto"
	"github.com/evimeria/catalog-service/internal/search"
	"github.com/evimeria/catalog-service/internal/slug"
	"github.com/evimeria/catalog-service/internal/subcategory"
)

const listCachePrefix = "products:list:"

type productUseCase struct {
	repo    product.Repository
	catRepo category.Repository
	subRepo subcategory.Repository
	cache   *cache.Cache
	es      *search.Client
	cfg     config.CatalogConfig
	logger  *zap.Logger
}

func NewProductUseCase(
	repo product.Repository,
	catRepo category.Repository,
	subRepo subcategory.Repository,
	c *cache.Cache,
	es *search.Client,
	cfg config.CatalogConfig,
	log *zap.Logger,
) product.UseCase {
	return &productUseCase{
		repo:    repo,
		catRepo: catRepo,
		subRepo: subRepo,
		cache:   c,
		es:      es,
		cfg:     cfg,
		logger:  log,
	}
}

func (uc *productUseCase) List(ctx context.Context, viewer auth.Viewer, filters *dto.ProductFilters) ([]model.Product, int, error) {
	filters.VisibleOnly = !viewer.IsAdmin
	filters.Page, filters.PageSize = uc.cfg.Clamp(filters.Page, filters.PageSize)

	// Only anonymous traffic is cached; admins see drafts and must not
	// share entries with the storefront.
	cacheable := viewer.UserID == "" && !viewer.IsAdmin

	var cacheKey string
	if cacheable {
		cacheKey = listCacheKey(filters)
		if data, ok := uc.cache.Get(ctx, cacheKey); ok {
			var cached struct {
				Products []model.Product `json:"products"`
				Count    int             `json:"count"`
			}
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.repo.AttachImages(ctx, products); err != nil {
		return nil, 0, err
	}

	if cacheable {
		payload := struct {
			Products []model.Product `json:"products"`
			Count    int             `json:"count"`
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Set(ctx, cacheKey, data)
		}
	}

	return products, count, nil
}

func listCacheKey(filters *dto.ProductFilters) string {
	data, _ := json.Marshal(filters)
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data))
}

func (uc *productUseCase) ListByCategorySlug(ctx context.Context, viewer auth.Viewer, s string, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cat, err := uc.catRepo.FindBySlug(ctx, s, !viewer.IsAdmin)
	if err != nil {
		return nil, 0, err
	}
	if cat == nil {
		return nil, 0, apperr.NotFound("category " + s)
	}

	filters.CategoryID = cat.ID
	filters.CategorySlug = ""
	return uc.List(ctx, viewer, filters)
}

func (uc *productUseCase) ListBySubCategorySlug(ctx context.Context, viewer auth.Viewer, s string, filters *dto.ProductFilters) ([]model.Product, int, error) {
	strictParent := uc.cfg.StrictVisibility && !viewer.IsAdmin
	sub, err := uc.subRepo.FindBySlug(ctx, s, !viewer.IsAdmin, strictParent)
	if err != nil {
		return nil, 0, err
	}
	if sub == nil {
		return nil, 0, apperr.NotFound("subcategory " + s)
	}

	filters.SubCategoryID = sub.ID
	filters.SubCategorySlug = ""
	return uc.List(ctx, viewer, filters)
}

func (uc *productUseCase) GetBySlug(ctx context.Context, viewer auth.Viewer, s string) (*model.Product, error) {
	visibleOnly := !viewer.IsAdmin
	strictParents := uc.cfg.StrictVisibility && !viewer.IsAdmin

	p, err := uc.repo.FindBySlug(ctx, s, visibleOnly, strictParents)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product " + s)
	}
	return p, nil
}

func (uc *productUseCase) Featured(ctx context.Context, viewer auth.Viewer) ([]model.Product, error) {
	featured := true
	filters := &dto.ProductFilters{
		VisibleOnly: !viewer.IsAdmin,
		Featured:    &featured,
		SortBy:      dto.SortCreatedAt,
		SortOrder:   dto.SortDesc,
		Page:        1,
		PageSize:    uc.cfg.FeaturedLimit,
	}

	products, _, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.AttachImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (uc *productUseCase) Search(ctx context.Context, viewer auth.Viewer, query string, page, pageSize int) ([]model.Product, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, apperr.Validation("search query is required")
	}
	page, pageSize = uc.cfg.Clamp(page, pageSize)
	visibleOnly := !viewer.IsAdmin

	if uc.es.Enabled() {
		products, count, err := uc.searchIndex(ctx, query, visibleOnly, page, pageSize)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Warn("search index failed, falling back to database", zap.Error(err))
	}

	filters := &dto.ProductFilters{
		VisibleOnly: visibleOnly,
		Search:      query,
		SortBy:      dto.SortCreatedAt,
		SortOrder:   dto.SortDesc,
		Page:        page,
		PageSize:    pageSize,
	}
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.repo.AttachImages(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

// searchIndex resolves ranked product IDs from the index, then reloads the
// rows from the database so responses never serve stale index documents.
func (uc *productUseCase) searchIndex(ctx context.Context, query string, visibleOnly bool, page, pageSize int) ([]model.Product, int, error) {
	ids, err := uc.es.Search(ctx, query, visibleOnly, page*pageSize)
	if err != nil {
		return nil, 0, err
	}

	count := len(ids)
	start := (page - 1) * pageSize
	if start >= count {
		return []model.Product{}, count, nil
	}
	end := start + pageSize
	if end > count {
		end = count
	}

	products := make([]model.Product, 0, end-start)
	for _, id := range ids[start:end] {
		p, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		if p == nil {
			continue // deleted since last index refresh
		}
		if visibleOnly && (!p.Available || !p.IsPublished) {
			continue
		}
		products = append(products, *p)
	}
	if err := uc.repo.AttachImages(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (uc *productUseCase) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	cat, err := uc.catRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.Validation("category does not exist")
	}

	subID, err := uc.resolveSubCategory(ctx, input.CategoryID, input.SubCategoryID)
	if err != nil {
		return nil, err
	}

	s := input.Slug
	if s == "" {
		s = slug.Make(input.Name)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:    input.CategoryID,
		SubCategoryID: subID,
		Name:          input.Name,
		Slug:          s,
		Description:   input.Description,
		Price:         input.Price,
		Stock:         input.Stock,
		Available:     input.Available,
		Featured:      input.Featured,
		IsPublished:   input.IsPublished,
		CategoryName:  cat.Name,
	}
	for _, img := range input.Images {
		p.Images = append(p.Images, model.ProductImage{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Image:     img.Image,
			IsMain:    img.IsMain,
			CreatedAt: now,
		})
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.cache.InvalidatePrefix(context.Background(), listCachePrefix)
	go uc.es.IndexProduct(context.Background(), p)

	uc.logger.Info("product created", zap.String("id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

func (uc *productUseCase) resolveSubCategory(ctx context.Context, categoryID, subCategoryID string) (*string, error) {
	if subCategoryID == "" {
		return nil, nil
	}
	sub, err := uc.subRepo.FindByID(ctx, subCategoryID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperr.Validation("subcategory does not exist")
	}
	if sub.CategoryID != categoryID {
		return nil, apperr.Validation("subcategory belongs to a different category")
	}
	return &sub.ID, nil
}

func (uc *productUseCase) Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product " + id)
	}

	cat, err := uc.catRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.Validation("category does not exist")
	}

	subID, err := uc.resolveSubCategory(ctx, input.CategoryID, input.SubCategoryID)
	if err != nil {
		return nil, err
	}

	// The slug is the product's public identity and stays stable across
	// renames.
	p.CategoryID = input.CategoryID
	p.SubCategoryID = subID
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.Stock = input.Stock
	p.Available = input.Available
	p.Featured = input.Featured
	p.IsPublished = input.IsPublished
	p.CategoryName = cat.Name
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.cache.InvalidatePrefix(context.Background(), listCachePrefix)
	go uc.es.IndexProduct(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product " + id)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.cache.InvalidatePrefix(context.Background(), listCachePrefix)
	go uc.es.DeleteProduct(context.Background(), id)

	uc.logger.Info("product deleted", zap.String("id", id), zap.String("slug", p.Slug))
	return nil
}

func (uc *productUseCase) AddImage(ctx context.Context, productID string, input *dto.ProductImageInput) (*model.ProductImage, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product " + productID)
	}

	img := &model.ProductImage{
		ID:        uuid.New().String(),
		ProductID: productID,
		Image:     input.Image,
		IsMain:    input.IsMain,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}

	go uc.cache.InvalidatePrefix(context.Background(), listCachePrefix)
	return img, nil
}
