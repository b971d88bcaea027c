package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/config"
	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/category"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/slug"
	"github.com/evimeria/catalog-service/internal/subcategory"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
)

type subCategoryUseCase struct {
	repo    subcategory.Repository
	catRepo category.Repository
	cfg     config.CatalogConfig
	logger  *zap.Logger
}

func NewSubCategoryUseCase(repo subcategory.Repository, catRepo category.Repository, cfg config.CatalogConfig, log *zap.Logger) subcategory.UseCase {
	return &subCategoryUseCase{
		repo:    repo,
		catRepo: catRepo,
		cfg:     cfg,
		logger:  log,
	}
}

func (uc *subCategoryUseCase) List(ctx context.Context, viewer auth.Viewer, categorySlug string, page, pageSize int) ([]model.SubCategory, int, error) {
	page, pageSize = uc.cfg.Clamp(page, pageSize)

	filters := &dto.SubCategoryFilters{
		VisibleOnly: !viewer.IsAdmin,
		Page:        page,
		PageSize:    pageSize,
	}

	// Listing under a category re-checks the parent's publication, unlike
	// direct subcategory fetches.
	if categorySlug != "" {
		cat, err := uc.catRepo.FindBySlug(ctx, categorySlug, !viewer.IsAdmin)
		if err != nil {
			return nil, 0, err
		}
		if cat == nil {
			return nil, 0, apperr.NotFound("category " + categorySlug)
		}
		filters.CategoryID = cat.ID
	}

	return uc.repo.FindAll(ctx, filters)
}

// GetBySlug checks only the subcategory's own publication flag: a published
// subcategory under an unpublished category still resolves directly, matching
// the reference behavior. StrictVisibility closes that asymmetry.
func (uc *subCategoryUseCase) GetBySlug(ctx context.Context, viewer auth.Viewer, slug string) (*model.SubCategory, error) {
	visibleOnly := !viewer.IsAdmin
	strictParent := uc.cfg.StrictVisibility && !viewer.IsAdmin

	sub, err := uc.repo.FindBySlug(ctx, slug, visibleOnly, strictParent)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperr.NotFound("subcategory " + slug)
	}
	return sub, nil
}

func (uc *subCategoryUseCase) Create(ctx context.Context, input *dto.CreateSubCategoryInput) (*model.SubCategory, error) {
	cat, err := uc.catRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category " + input.CategoryID)
	}

	s := input.Slug
	if s == "" {
		s = slug.Make(input.Name)
	}

	now := time.Now()
	sub := &model.SubCategory{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        s,
		Description: input.Description,
		IsPublished: input.IsPublished,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	uc.logger.Info("subcategory created",
		zap.String("id", sub.ID),
		zap.String("slug", sub.Slug),
		zap.String("category_id", sub.CategoryID))
	return sub, nil
}

func (uc *subCategoryUseCase) Update(ctx context.Context, id string, input *dto.UpdateSubCategoryInput) (*model.SubCategory, error) {
	sub, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperr.NotFound("subcategory " + id)
	}

	sub.Name = input.Name
	sub.Description = input.Description
	sub.IsPublished = input.IsPublished
	sub.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (uc *subCategoryUseCase) Delete(ctx context.Context, id string) error {
	sub, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return apperr.NotFound("subcategory " + id)
	}
	return uc.repo.Delete(ctx, id)
}
