package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/subcategory/dto"
)

const sellableCount = `(SELECT COUNT(*) FROM products p
        WHERE p.subcategory_id = s.id AND p.available = TRUE AND p.is_published = TRUE) AS products_count`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(database *sqlx.DB) *PGRepository {
	return &PGRepository{DB: database}
}

func (r *PGRepository) Create(ctx context.Context, s *model.SubCategory) error {
	query := `
        INSERT INTO subcategories (id, category_id, name, slug, description, is_published, created_at, updated_at)
        VALUES (:id, :category_id, :name, :slug, :description, :is_published, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, s); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("subcategory slug " + s.Slug + " within category")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.SubCategory) error {
	query := `
        UPDATE subcategories
        SET name = :name,
            slug = :slug,
            description = :description,
            is_published = :is_published,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, s); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("subcategory slug " + s.Slug + " within category")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback()

	// Products survive subcategory removal, they just fall back to the
	// category level.
	steps := []string{
		`UPDATE products SET subcategory_id = NULL WHERE subcategory_id = ?`,
		`DELETE FROM subcategories WHERE id = ?`,
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

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.SubCategory, error) {
	return r.findOne(ctx, "s.id = :id", map[string]interface{}{"id": id})
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string, visibleOnly, strictParent bool) (*model.SubCategory, error) {
	cond := "s.slug = :slug"
	if visibleOnly {
		cond += " AND s.is_published = TRUE"
	}
	if strictParent {
		cond += ` AND EXISTS (SELECT 1 FROM categories c WHERE c.id = s.category_id AND c.is_published = TRUE)`
	}
	return r.findOne(ctx, cond, map[string]interface{}{"slug": slug})
}

func (r *PGRepository) FindByNaturalKey(ctx context.Context, categoryID, name string) (*model.SubCategory, error) {
	return r.findOne(ctx, "s.category_id = :category_id AND s.name = :name", map[string]interface{}{
		"category_id": categoryID,
		"name":        name,
	})
}

func (r *PGRepository) findOne(ctx context.Context, cond string, args map[string]interface{}) (*model.SubCategory, error) {
	// id ordering keeps the pick deterministic when a slug recurs across
	// categories.
	query := "SELECT s.*, " + sellableCount + " FROM subcategories s WHERE " + cond + " ORDER BY s.id ASC LIMIT 1"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer nstmt.Close()

	var sub model.SubCategory
	if err := nstmt.GetContext(ctx, &sub, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(err)
	}
	return &sub, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SubCategoryFilters) ([]model.SubCategory, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.VisibleOnly {
		conditions = append(conditions, "s.is_published = TRUE")
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "s.category_id = :category_id")
		args["category_id"] = f.CategoryID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery := "SELECT COUNT(*) FROM subcategories s" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT s.*, " + sellableCount + " FROM subcategories s" + whereClause +
		" ORDER BY s.name ASC, s.id ASC"

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer nstmt.Close()

	var subs []model.SubCategory
	if err := nstmt.SelectContext(ctx, &subs, args); err != nil {
		return nil, 0, apperr.Storage(err)
	}

	return subs, count, nil
}
