package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	appconfig "github.com/evimeria/catalog-service/config"
	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/auth"
	catrepo "github.com/evimeria/catalog-service/internal/category/repository"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/subcategory"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
	subrepo "github.com/evimeria/catalog-service/internal/subcategory/repository"
)

func newTestUseCase(t *testing.T, strict bool) (subcategory.UseCase, *sqlx.DB) {
	t.Helper()
	database := db.NewTestDB(t)
	cfg := appconfig.CatalogConfig{
		DefaultPageSize:  100,
		MaxPageSize:      1000,
		StrictVisibility: strict,
	}
	uc := NewSubCategoryUseCase(
		subrepo.NewPGRepository(database),
		catrepo.NewPGRepository(database),
		cfg,
		zap.NewNop(),
	)
	return uc, database
}

func seedCategory(t *testing.T, database *sqlx.DB, name, slug string, published bool) *model.Category {
	t.Helper()
	now := time.Now()
	cat := &model.Category{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        name,
		Slug:        slug,
		IsPublished: published,
	}
	if err := catrepo.NewPGRepository(database).Create(context.Background(), cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return cat
}

func TestCreateRequiresExistingParent(t *testing.T) {
	uc, _ := newTestUseCase(t, false)

	_, err := uc.Create(context.Background(), &dto.CreateSubCategoryInput{
		CategoryID: uuid.New().String(),
		Name:       "Montres",
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for missing parent, got %v", err)
	}
}

func TestCreateDerivesSlug(t *testing.T) {
	uc, database := newTestUseCase(t, false)
	cat := seedCategory(t, database, "Hommes", "hommes", true)

	sub, err := uc.Create(context.Background(), &dto.CreateSubCategoryInput{
		CategoryID:  cat.ID,
		Name:        "Casquettes & Sacs",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Slug != "casquettes-sacs" {
		t.Errorf("expected derived slug, got %q", sub.Slug)
	}
}

func TestGetBySlugOwnFlagUnlessStrict(t *testing.T) {
	ctx := context.Background()

	// Default mode: own flag only.
	uc, database := newTestUseCase(t, false)
	draft := seedCategory(t, database, "Brouillon", "brouillon", false)
	if _, err := uc.Create(ctx, &dto.CreateSubCategoryInput{
		CategoryID:  draft.ID,
		Name:        "Montres",
		IsPublished: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uc.GetBySlug(ctx, auth.Anonymous(), "montres"); err != nil {
		t.Errorf("expected resolution on own flag, got %v", err)
	}

	// Strict mode: parent must be published too.
	strictUC, strictDB := newTestUseCase(t, true)
	strictDraft := seedCategory(t, strictDB, "Brouillon", "brouillon", false)
	if _, err := strictUC.Create(ctx, &dto.CreateSubCategoryInput{
		CategoryID:  strictDraft.ID,
		Name:        "Montres",
		IsPublished: true,
	}); err != nil {
		t.Fatalf("Create strict: %v", err)
	}
	if _, err := strictUC.GetBySlug(ctx, auth.Anonymous(), "montres"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found under strict visibility, got %v", err)
	}
	// Admins bypass the strict check.
	if _, err := strictUC.GetBySlug(ctx, auth.Viewer{UserID: "a", IsAdmin: true}, "montres"); err != nil {
		t.Errorf("expected admin to resolve regardless, got %v", err)
	}
}
