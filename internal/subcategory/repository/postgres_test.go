package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/evimeria/catalog-service/internal/apperr"
	catrepo "github.com/evimeria/catalog-service/internal/category/repository"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
)

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
		t.Fatalf("seed category %s: %v", name, err)
	}
	return cat
}

func newSubCategory(categoryID, name, slug string, published bool) *model.SubCategory {
	now := time.Now()
	return &model.SubCategory{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug,
		IsPublished: published,
	}
}

func TestSlugUniquePerCategory(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	ctx := context.Background()

	hommes := seedCategory(t, database, "Hommes", "hommes", true)
	femmes := seedCategory(t, database, "Femmes", "femmes", true)

	if err := repo.Create(ctx, newSubCategory(hommes.ID, "Chaussures", "chaussures", true)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same slug under a different category is fine.
	if err := repo.Create(ctx, newSubCategory(femmes.ID, "Chaussures", "chaussures", true)); err != nil {
		t.Errorf("same slug across categories should be allowed: %v", err)
	}

	// Same slug under the same category collides.
	err := repo.Create(ctx, newSubCategory(hommes.ID, "Chaussures bis", "chaussures", true))
	if !errors.Is(err, apperr.ErrUniqueness) {
		t.Errorf("expected uniqueness violation, got %v", err)
	}
}

func TestFindBySlugPicksDeterministically(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	ctx := context.Background()

	hommes := seedCategory(t, database, "Hommes", "hommes", true)
	femmes := seedCategory(t, database, "Femmes", "femmes", true)

	a := newSubCategory(hommes.ID, "Chaussures", "chaussures", true)
	b := newSubCategory(femmes.ID, "Chaussures", "chaussures", true)
	repo.Create(ctx, a)
	repo.Create(ctx, b)

	wantID := a.ID
	if b.ID < a.ID {
		wantID = b.ID
	}

	for i := 0; i < 5; i++ {
		got, err := repo.FindBySlug(ctx, "chaussures", true, false)
		if err != nil {
			t.Fatalf("FindBySlug: %v", err)
		}
		if got.ID != wantID {
			t.Fatalf("expected lowest id %s, got %s", wantID, got.ID)
		}
	}
}

func TestOwnFlagOnlyVisibility(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	ctx := context.Background()

	draftParent := seedCategory(t, database, "Brouillon", "brouillon", false)
	repo.Create(ctx, newSubCategory(draftParent.ID, "Montres", "montres", true))

	// A published subcategory under an unpublished category still resolves
	// by its own flag.
	sub, err := repo.FindBySlug(ctx, "montres", true, false)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if sub == nil {
		t.Fatal("expected subcategory to resolve on its own flag")
	}

	// Strict parent check closes the gap.
	sub, err = repo.FindBySlug(ctx, "montres", true, true)
	if err != nil {
		t.Fatalf("FindBySlug strict: %v", err)
	}
	if sub != nil {
		t.Error("expected strict parent check to hide the subcategory")
	}
}

func TestUnpublishedSubCategoryHidden(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	ctx := context.Background()

	cat := seedCategory(t, database, "Hommes", "hommes", true)
	repo.Create(ctx, newSubCategory(cat.ID, "Montres", "montres", false))

	if sub, _ := repo.FindBySlug(ctx, "montres", true, false); sub != nil {
		t.Error("draft subcategory leaked to anonymous viewer")
	}
	if sub, _ := repo.FindBySlug(ctx, "montres", false, false); sub == nil {
		t.Error("draft subcategory hidden from admin viewer")
	}
}

func TestFindAllByCategoryOrderedByName(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	ctx := context.Background()

	hommes := seedCategory(t, database, "Hommes", "hommes", true)
	femmes := seedCategory(t, database, "Femmes", "femmes", true)

	repo.Create(ctx, newSubCategory(hommes.ID, "Montres", "montres", true))
	repo.Create(ctx, newSubCategory(hommes.ID, "Accessoires", "accessoires", true))
	repo.Create(ctx, newSubCategory(femmes.ID, "Sacs", "sacs", true))

	subs, count, err := repo.FindAll(ctx, &dto.SubCategoryFilters{
		VisibleOnly: true,
		CategoryID:  hommes.ID,
		Page:        1,
		PageSize:    10,
	})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if count != 2 || len(subs) != 2 {
		t.Fatalf("expected 2 subcategories, got count=%d len=%d", count, len(subs))
	}
	if subs[0].Name != "Accessoires" || subs[1].Name != "Montres" {
		t.Errorf("expected name ordering, got %q then %q", subs[0].Name, subs[1].Name)
	}
}

func TestDeleteDetachesProducts(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewPGRepository(database)
	ctx := context.Background()

	cat := seedCategory(t, database, "Hommes", "hommes", true)
	sub := newSubCategory(cat.ID, "Montres", "montres", true)
	repo.Create(ctx, sub)

	now := time.Now()
	productID := uuid.New().String()
	_, err := database.Exec(database.Rebind(
		`INSERT INTO products (id, category_id, subcategory_id, name, slug, description, price, stock,
			available, featured, is_published, created_at, updated_at)
		 VALUES (?, ?, ?, 'Montre', 'montre', '', 99.90, 1, TRUE, FALSE, TRUE, ?, ?)`),
		productID, cat.ID, sub.ID, now, now)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	if err := repo.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var subcategoryID *string
	if err := database.Get(&subcategoryID, database.Rebind(
		`SELECT subcategory_id FROM products WHERE id = ?`), productID); err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if subcategoryID != nil {
		t.Errorf("expected product detached from deleted subcategory, got %v", *subcategoryID)
	}
}
