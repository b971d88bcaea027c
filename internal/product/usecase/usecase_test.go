package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appconfig "github.com/evimeria/catalog-service/config"
	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/auth"
	"github.com/evimeria/catalog-service/internal/cache"
	catrepo "github.com/evimeria/catalog-service/internal/category/repository"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/product"
	"github.com/evimeria/catalog-service/internal/product/dto"
	prodrepo "github.com/evimeria/catalog-service/internal/product/repository"
	"github.com/evimeria/catalog-service/internal/search"
	subrepo "github.com/evimeria/catalog-service/internal/subcategory/repository"
)

func testCatalogConfig() appconfig.CatalogConfig {
	return appconfig.CatalogConfig{
		DefaultPageSize: 100,
		MaxPageSize:     1000,
		FeaturedLimit:   8,
		MediaPrefix:     "/media/",
	}
}

func newTestUseCase(t *testing.T) (product.UseCase, *prodrepo.PGRepository, *sqlx.DB) {
	t.Helper()
	database := db.NewTestDB(t)
	log := zap.NewNop()

	repo := prodrepo.NewPGRepository(database)
	searchClient, err := search.New(&appconfig.Config{}, log)
	if err != nil {
		t.Fatalf("search client: %v", err)
	}

	uc := NewProductUseCase(
		repo,
		catrepo.NewPGRepository(database),
		subrepo.NewPGRepository(database),
		cache.New(&appconfig.Config{}),
		searchClient,
		testCatalogConfig(),
		log,
	)
	return uc, repo, database
}

func seedCategory(t *testing.T, database *sqlx.DB, name, slug string) *model.Category {
	t.Helper()
	now := time.Now()
	cat := &model.Category{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        name,
		Slug:        slug,
		IsPublished: true,
	}
	if err := catrepo.NewPGRepository(database).Create(context.Background(), cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return cat
}

func TestCreateAssignsSlugAndDefaults(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()
	cat := seedCategory(t, database, "Hommes", "hommes")

	p, err := uc.Create(ctx, &dto.CreateProductInput{
		CategoryID:  cat.ID,
		Name:        "Produits cosmétiques",
		Price:       decimal.RequireFromString("15.50"),
		Available:   true,
		IsPublished: true,
		Images: []dto.ProductImageInput{
			{Image: "products/main.jpg", IsMain: true},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "produits-cosmetiques" {
		t.Errorf("expected accent-folded slug, got %q", p.Slug)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Errorf("expected id and timestamps assigned")
	}
	if len(p.Images) != 1 || p.Images[0].ProductID != p.ID {
		t.Errorf("expected initial image linked to product, got %+v", p.Images)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Create(context.Background(), &dto.CreateProductInput{
		CategoryID: uuid.New().String(),
		Name:       "Orphan",
		Price:      decimal.RequireFromString("1"),
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsForeignSubCategory(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()

	hommes := seedCategory(t, database, "Hommes", "hommes")
	femmes := seedCategory(t, database, "Femmes", "femmes")

	now := time.Now()
	sub := &model.SubCategory{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:  femmes.ID,
		Name:        "Sacs",
		Slug:        "sacs",
		IsPublished: true,
	}
	if err := subrepo.NewPGRepository(database).Create(ctx, sub); err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}

	_, err := uc.Create(ctx, &dto.CreateProductInput{
		CategoryID:    hommes.ID,
		SubCategoryID: sub.ID,
		Name:          "Mismatch",
		Price:         decimal.RequireFromString("1"),
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for cross-category subcategory, got %v", err)
	}
}

func TestListClampsPageSize(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()
	seedCategory(t, database, "Hommes", "hommes")

	filters := &dto.ProductFilters{Page: 0, PageSize: 5000}
	if _, _, err := uc.List(ctx, auth.Anonymous(), filters); err != nil {
		t.Fatalf("List: %v", err)
	}
	if filters.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", filters.Page)
	}
	if filters.PageSize != 1000 {
		t.Errorf("expected page size clamped to 1000, got %d", filters.PageSize)
	}
}

func TestListVisibilityFollowsViewer(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()
	cat := seedCategory(t, database, "Hommes", "hommes")

	if _, err := uc.Create(ctx, &dto.CreateProductInput{
		CategoryID: cat.ID, Name: "Draft", Price: decimal.RequireFromString("1"),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, count, err := uc.List(ctx, auth.Anonymous(), &dto.ProductFilters{})
	if err != nil {
		t.Fatalf("List anonymous: %v", err)
	}
	if count != 0 {
		t.Errorf("anonymous viewer saw %d draft products", count)
	}

	_, count, err = uc.List(ctx, auth.Viewer{UserID: "u1", IsAdmin: true}, &dto.ProductFilters{})
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if count != 1 {
		t.Errorf("admin expected to see the draft, got %d", count)
	}
}

func TestFeaturedCappedAtLimit(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()
	cat := seedCategory(t, database, "Hommes", "hommes")

	repo := prodrepo.NewPGRepository(database)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		p := &model.Product{
			BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: at, UpdatedAt: at},
			CategoryID:  cat.ID,
			Name:        fmt.Sprintf("Featured %d", i),
			Slug:        fmt.Sprintf("featured-%d", i),
			Price:       decimal.RequireFromString("10"),
			Available:   true,
			Featured:    true,
			IsPublished: true,
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("seed product %d: %v", i, err)
		}
	}

	got, err := uc.Featured(ctx, auth.Anonymous())
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected featured capped at 8, got %d", len(got))
	}
	// Newest first.
	if got[0].Slug != "featured-9" {
		t.Errorf("expected newest featured first, got %q", got[0].Slug)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	for _, q := range []string{"", "   "} {
		_, _, err := uc.Search(context.Background(), auth.Anonymous(), q, 1, 10)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Search(%q): expected validation error, got %v", q, err)
		}
	}
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()
	cat := seedCategory(t, database, "Hommes", "hommes")

	if _, err := uc.Create(ctx, &dto.CreateProductInput{
		CategoryID:  cat.ID,
		Name:        "Red Shoes",
		Price:       decimal.RequireFromString("10"),
		Available:   true,
		IsPublished: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// No search index configured: the database substring match serves.
	got, count, err := uc.Search(ctx, auth.Anonymous(), "red", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if count != 1 || len(got) != 1 || got[0].Slug != "red-shoes" {
		t.Errorf("expected the shoe, got count=%d %+v", count, got)
	}
}

func TestListByCategorySlugChecksParentVisibility(t *testing.T) {
	uc, repo, database := newTestUseCase(t)
	ctx := context.Background()

	now := time.Now()
	draft := &model.Category{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        "Brouillon",
		Slug:        "brouillon",
		IsPublished: false,
	}
	if err := catrepo.NewPGRepository(database).Create(ctx, draft); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:  draft.ID,
		Name:        "Hidden",
		Slug:        "hidden",
		Price:       decimal.RequireFromString("10"),
		Available:   true,
		IsPublished: true,
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// The draft parent makes the whole listing a 404 for anonymous viewers.
	_, _, err := uc.ListByCategorySlug(ctx, auth.Anonymous(), "brouillon", &dto.ProductFilters{})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for draft parent, got %v", err)
	}

	// Admins list it fine.
	_, count, err := uc.ListByCategorySlug(ctx, auth.Viewer{UserID: "a", IsAdmin: true}, "brouillon", &dto.ProductFilters{})
	if err != nil {
		t.Fatalf("admin listing: %v", err)
	}
	if count != 1 {
		t.Errorf("expected admin to see 1 product, got %d", count)
	}
}

func TestGetBySlugNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.GetBySlug(context.Background(), auth.Anonymous(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateKeepsSlugStable(t *testing.T) {
	uc, _, database := newTestUseCase(t)
	ctx := context.Background()
	cat := seedCategory(t, database, "Hommes", "hommes")

	p, err := uc.Create(ctx, &dto.CreateProductInput{
		CategoryID:  cat.ID,
		Name:        "Red Shoes",
		Price:       decimal.RequireFromString("10"),
		Available:   true,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := uc.Update(ctx, p.ID, &dto.UpdateProductInput{
		CategoryID:  cat.ID,
		Name:        "Crimson Shoes",
		Price:       decimal.RequireFromString("12"),
		Available:   true,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "red-shoes" {
		t.Errorf("expected slug unchanged after rename, got %q", updated.Slug)
	}
	if updated.Name != "Crimson Shoes" {
		t.Errorf("expected name updated, got %q", updated.Name)
	}
}

func TestDeleteThenGone(t *testing.T) {
	uc, repo, database := newTestUseCase(t)
	ctx := context.Background()
	cat := seedCategory(t, database, "Hommes", "hommes")

	p, err := uc.Create(ctx, &dto.CreateProductInput{
		CategoryID:  cat.ID,
		Name:        "Red Shoes",
		Price:       decimal.RequireFromString("10"),
		Available:   true,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := uc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := repo.FindByID(ctx, p.ID); got != nil {
		t.Errorf("expected product removed, got %+v", got)
	}
	if err := uc.Delete(ctx, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}
