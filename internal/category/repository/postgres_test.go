package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
	prodrepo "github.com/evimeria/catalog-service/internal/product/repository"
)

func newCategory(name, slug string, published bool) *model.Category {
	now := time.Now()
	return &model.Category{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        name,
		Slug:        slug,
		IsPublished: published,
	}
}

func newProduct(categoryID, name, slug string, available, published bool) *model.Product {
	now := time.Now()
	return &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug,
		Price:       decimal.RequireFromString("19.99"),
		Stock:       3,
		Available:   available,
		IsPublished: published,
	}
}

func TestCreateAndFindBySlug(t *testing.T) {
	repo := NewPGRepository(db.NewTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newCategory("Hommes", "hommes", true)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cat, err := repo.FindBySlug(ctx, "hommes", true)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if cat == nil || cat.Name != "Hommes" {
		t.Fatalf("expected Hommes, got %+v", cat)
	}

	missing, err := repo.FindBySlug(ctx, "nope", true)
	if err != nil {
		t.Fatalf("FindBySlug missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown slug, got %+v", missing)
	}
}

func TestSlugUniqueness(t *testing.T) {
	repo := NewPGRepository(db.NewTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newCategory("Hommes", "hommes", true)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, newCategory("Hommes bis", "hommes", true))
	if !errors.Is(err, apperr.ErrUniqueness) {
		t.Errorf("expected uniqueness violation, got %v", err)
	}
}

func TestVisibilityFilter(t *testing.T) {
	repo := NewPGRepository(db.NewTestDB(t))
	ctx := context.Background()

	repo.Create(ctx, newCategory("Published", "published", true))
	repo.Create(ctx, newCategory("Draft", "draft", false))

	// Anonymous viewers see only published categories.
	if cat, _ := repo.FindBySlug(ctx, "draft", true); cat != nil {
		t.Errorf("draft category leaked to anonymous viewer")
	}
	// Admins see drafts.
	if cat, _ := repo.FindBySlug(ctx, "draft", false); cat == nil {
		t.Errorf("draft category hidden from admin viewer")
	}

	visible, count, err := repo.FindAll(ctx, &dto.CategoryFilters{VisibleOnly: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if count != 1 || len(visible) != 1 {
		t.Errorf("expected 1 visible category, got count=%d len=%d", count, len(visible))
	}

	all, count, _ := repo.FindAll(ctx, &dto.CategoryFilters{Page: 1, PageSize: 10})
	if count != 2 || len(all) != 2 {
		t.Errorf("expected 2 categories for admin, got count=%d len=%d", count, len(all))
	}
}

func TestProductsCountCountsSellableOnly(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	products := prodrepo.NewPGRepository(database)
	ctx := context.Background()

	cat := newCategory("Hommes", "hommes", true)
	if err := repo.Create(ctx, cat); err != nil {
		t.Fatalf("Create category: %v", err)
	}

	// Only available AND published products count.
	products.Create(ctx, newProduct(cat.ID, "Sellable", "sellable", true, true))
	products.Create(ctx, newProduct(cat.ID, "Out of stock", "out-of-stock", false, true))
	products.Create(ctx, newProduct(cat.ID, "Hidden", "hidden", true, false))

	got, err := repo.FindBySlug(ctx, "hommes", true)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got.ProductsCount != 1 {
		t.Errorf("expected products_count 1, got %d", got.ProductsCount)
	}
}

func TestFindAllOrdersByProductsCount(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	products := prodrepo.NewPGRepository(database)
	ctx := context.Background()

	small := newCategory("Small", "small", true)
	big := newCategory("Big", "big", true)
	repo.Create(ctx, small)
	repo.Create(ctx, big)

	products.Create(ctx, newProduct(big.ID, "A", "a", true, true))
	products.Create(ctx, newProduct(big.ID, "B", "b", true, true))
	products.Create(ctx, newProduct(small.ID, "C", "c", true, true))

	cats, _, err := repo.FindAll(ctx, &dto.CategoryFilters{VisibleOnly: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Slug != "big" {
		t.Errorf("expected most stocked category first, got %q", cats[0].Slug)
	}
	if cats[0].ProductsCount != 2 || cats[1].ProductsCount != 1 {
		t.Errorf("unexpected counts: %d, %d", cats[0].ProductsCount, cats[1].ProductsCount)
	}
}

func TestDeleteCascades(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	products := prodrepo.NewPGRepository(database)
	ctx := context.Background()

	cat := newCategory("Hommes", "hommes", true)
	repo.Create(ctx, cat)

	p := newProduct(cat.ID, "Shoes", "shoes", true, true)
	p.Images = []model.ProductImage{{
		ID:        uuid.New().String(),
		ProductID: p.ID,
		Image:     "products/shoes.jpg",
		IsMain:    true,
		CreatedAt: time.Now(),
	}}
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("Create product: %v", err)
	}

	if err := repo.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	for _, table := range []string{"categories", "products", "product_images"} {
		if err := database.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("expected %s emptied by cascade, got %d rows", table, n)
		}
	}
}
