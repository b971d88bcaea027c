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
	"github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/slug"
)

type categoryUseCase struct {
	repo   category.Repository
	cfg    config.CatalogConfig
	logger *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, cfg config.CatalogConfig, log *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cfg:    cfg,
		logger: log,
	}
}

func (uc *categoryUseCase) List(ctx context.Context, viewer auth.Viewer, page, pageSize int) ([]model.Category, int, error) {
	page, pageSize = uc.cfg.Clamp(page, pageSize)

	return uc.repo.FindAll(ctx, &dto.CategoryFilters{
		VisibleOnly: !viewer.IsAdmin,
		Page:        page,
		PageSize:    pageSize,
	})
}

func (uc *categoryUseCase) GetBySlug(ctx context.Context, viewer auth.Viewer, slug string) (*model.Category, error) {
	cat, err := uc.repo.FindBySlug(ctx, slug, !viewer.IsAdmin)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category " + slug)
	}
	return cat, nil
}

func (uc *categoryUseCase) Create(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	s := input.Slug
	if s == "" {
		s = slug.Make(input.Name)
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Slug:        s,
		Description: input.Description,
		IsPublished: input.IsPublished,
	}
	if input.Image != "" {
		cat.Image = &input.Image
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.logger.Info("category created", zap.String("id", cat.ID), zap.String("slug", cat.Slug))
	return cat, nil
}

func (uc *categoryUseCase) Update(ctx context.Context, id string, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category " + id)
	}

	cat.Name = input.Name
	cat.Description = input.Description
	cat.IsPublished = input.IsPublished
	if input.Image != "" {
		cat.Image = &input.Image
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) Delete(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperr.NotFound("category " + id)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("category deleted", zap.String("id", id), zap.String("slug", cat.Slug))
	return nil
}
