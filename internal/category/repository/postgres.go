package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/category/dto"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
)

// sellableCount annotates a category row with the number of products an
// anonymous caller can actually buy.
const sellableCount = `(SELECT COUNT(*) FROM products p
        WHERE p.category_id = c.id AND p.available = TRUE AND p.is_published = TRUE) AS products_count`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(database *sqlx.DB) *PGRepository {
	return &PGRepository{DB: database}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, slug, description, image, is_published, created_at, updated_at)
        VALUES (:id, :name, :slug, :description, :image, :is_published, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("category slug " + c.Slug)
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            slug = :slug,
            description = :description,
            image = :image,
            is_published = :is_published,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("category slug " + c.Slug)
		}
		return apperr.Storage(err)
	}
	return nil
}

// Delete removes children explicitly, child-first, inside one transaction, so
// the cascade holds even where foreign-key enforcement is off.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM product_images WHERE product_id IN (SELECT id FROM products WHERE category_id = ?)`,
		`DELETE FROM products WHERE category_id = ?`,
		`DELETE FROM subcategories WHERE category_id = ?`,
		`DELETE FROM categories WHERE id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, tx.Rebind(q), id); err != nil {
			return apperr.Storage(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.findOne(ctx, "c.id = :id", map[string]interface{}{"id": id})
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string, visibleOnly bool) (*model.Category, error) {
	cond := "c.slug = :slug"
	if visibleOnly {
		cond += " AND c.is_published = TRUE"
	}
	return r.findOne(ctx, cond, map[string]interface{}{"slug": slug})
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.findOne(ctx, "c.name = :name", map[string]interface{}{"name": name})
}

func (r *PGRepository) findOne(ctx context.Context, cond string, args map[string]interface{}) (*model.Category, error) {
	query := "SELECT c.*, " + sellableCount + " FROM categories c WHERE " + cond + " LIMIT 1"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer nstmt.Close()

	var category model.Category
	if err := nstmt.GetContext(ctx, &category, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(err)
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.VisibleOnly {
		conditions = append(conditions, "c.is_published = TRUE")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Count
	var count int
	countQuery := "SELECT COUNT(*) FROM categories c" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	// List, most stocked storefronts first, id as the stable tie-break.
	query := "SELECT c.*, " + sellableCount + " FROM categories c" + whereClause +
		" ORDER BY products_count DESC, c.id ASC"

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer nstmt.Close()

	var categories []model.Category
	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, apperr.Storage(err)
	}

	return categories, count, nil
}
