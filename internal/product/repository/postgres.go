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
	"github.com/evimeria/catalog-service/internal/product/dto"
)

const productColumns = `p.id, p.category_id, p.subcategory_id, p.name, p.slug, p.description,
       p.price, p.stock, p.available, p.featured, p.is_published, p.created_at, p.updated_at,
       c.name AS category_name`

const insertImageQuery = `
        INSERT INTO product_images (id, product_id, image, is_main, created_at)
        VALUES (:id, :product_id, :image, :is_main, :created_at)
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(database *sqlx.DB) *PGRepository {
	return &PGRepository{DB: database}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (id, category_id, subcategory_id, name, slug, description,
                              price, stock, available, featured, is_published, created_at, updated_at)
        VALUES (:id, :category_id, :subcategory_id, :name, :slug, :description,
                :price, :stock, :available, :featured, :is_published, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("product slug " + p.Slug)
		}
		return apperr.Storage(err)
	}

	for i := range p.Images {
		if _, err := tx.NamedExecContext(ctx, insertImageQuery, &p.Images[i]); err != nil {
			return apperr.Storage(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            subcategory_id = :subcategory_id,
            name = :name,
            slug = :slug,
            description = :description,
            price = :price,
            stock = :stock,
            available = :available,
            featured = :featured,
            is_published = :is_published,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, p); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("product slug " + p.Slug)
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

	steps := []string{
		`DELETE FROM product_images WHERE product_id = ?`,
		`DELETE FROM products WHERE id = ?`,
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

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.findOne(ctx, "p.id = :id", map[string]interface{}{"id": id})
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string, visibleOnly, strictParents bool) (*model.Product, error) {
	cond := "p.slug = :slug"
	if visibleOnly {
		cond += " AND p.available = TRUE AND p.is_published = TRUE"
	}
	if strictParents {
		cond += ` AND c.is_published = TRUE
            AND (p.subcategory_id IS NULL OR EXISTS
                (SELECT 1 FROM subcategories s WHERE s.id = p.subcategory_id AND s.is_published = TRUE))`
	}

	p, err := r.findOne(ctx, cond, map[string]interface{}{"slug": slug})
	if err != nil || p == nil {
		return p, err
	}

	if err := r.loadCategory(ctx, p); err != nil {
		return nil, err
	}
	images, err := r.ListImages(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return p, nil
}

func (r *PGRepository) FindByNaturalKey(ctx context.Context, categoryID, name string) (*model.Product, error) {
	return r.findOne(ctx, "p.category_id = :category_id AND p.name = :name", map[string]interface{}{
		"category_id": categoryID,
		"name":        name,
	})
}

func (r *PGRepository) findOne(ctx context.Context, cond string, args map[string]interface{}) (*model.Product, error) {
	query := "SELECT " + productColumns +
		" FROM products p JOIN categories c ON c.id = p.category_id WHERE " + cond + " LIMIT 1"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer nstmt.Close()

	var p model.Product
	if err := nstmt.GetContext(ctx, &p, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(err)
	}
	return &p, nil
}

func (r *PGRepository) loadCategory(ctx context.Context, p *model.Product) error {
	query := r.DB.Rebind(`SELECT c.*, (SELECT COUNT(*) FROM products p
        WHERE p.category_id = c.id AND p.available = TRUE AND p.is_published = TRUE) AS products_count
        FROM categories c WHERE c.id = ?`)

	var cat model.Category
	if err := r.DB.GetContext(ctx, &cat, query, p.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return apperr.Storage(err)
	}
	p.Category = &cat
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.VisibleOnly {
		conditions = append(conditions, "p.available = TRUE", "p.is_published = TRUE")
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "p.category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.CategorySlug != "" {
		cond := "c.slug = :category_slug"
		if f.VisibleOnly {
			cond += " AND c.is_published = TRUE"
		}
		conditions = append(conditions, cond)
		args["category_slug"] = f.CategorySlug
	}
	if f.SubCategoryID != "" {
		conditions = append(conditions, "p.subcategory_id = :subcategory_id")
		args["subcategory_id"] = f.SubCategoryID
	}
	if f.SubCategorySlug != "" {
		cond := "s.slug = :subcategory_slug"
		if f.VisibleOnly {
			cond += " AND s.is_published = TRUE"
		}
		conditions = append(conditions,
			"p.subcategory_id IN (SELECT s.id FROM subcategories s WHERE "+cond+")")
		args["subcategory_slug"] = f.SubCategorySlug
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "p.price >= :min_price")
		args["min_price"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "p.price <= :max_price")
		args["max_price"] = *f.MaxPrice
	}
	if f.Search != "" {
		conditions = append(conditions, "(LOWER(p.name) LIKE :search OR LOWER(p.description) LIKE :search)")
		args["search"] = "%" + strings.ToLower(f.Search) + "%"
	}
	if f.Featured != nil {
		conditions = append(conditions, "p.featured = :featured")
		args["featured"] = *f.Featured
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	fromClause := " FROM products p JOIN categories c ON c.id = p.category_id"

	// Count
	var count int
	countQuery := "SELECT COUNT(*)" + fromClause + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	// List. Direction is a uniform transform on the chosen column, and the
	// trailing id keeps equal-weight ties stable between requests.
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = dto.SortCreatedAt
	}
	direction := "DESC"
	if f.SortOrder == dto.SortAsc {
		direction = "ASC"
	}
	orderBy := fmt.Sprintf(" ORDER BY %s %s, p.id ASC", sortBy.Column(), direction)

	query := "SELECT " + productColumns + fromClause + whereClause + orderBy
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer nstmt.Close()

	var products []model.Product
	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, apperr.Storage(err)
	}

	return products, count, nil
}

func (r *PGRepository) AddImage(ctx context.Context, img *model.ProductImage) error {
	if _, err := r.DB.NamedExecContext(ctx, insertImageQuery, img); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) ListImages(ctx context.Context, productID string) ([]model.ProductImage, error) {
	query := r.DB.Rebind(`SELECT * FROM product_images WHERE product_id = ? ORDER BY created_at ASC, id ASC`)

	var images []model.ProductImage
	if err := r.DB.SelectContext(ctx, &images, query, productID); err != nil {
		return nil, apperr.Storage(err)
	}
	return images, nil
}

func (r *PGRepository) AttachImages(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
		byID[products[i].ID] = &products[i]
	}

	query, params, err := sqlx.In(
		`SELECT * FROM product_images WHERE product_id IN (?) ORDER BY created_at ASC, id ASC`, ids)
	if err != nil {
		return apperr.Storage(err)
	}

	var images []model.ProductImage
	if err := r.DB.SelectContext(ctx, &images, r.DB.Rebind(query), params...); err != nil {
		return apperr.Storage(err)
	}

	for _, img := range images {
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return nil
}
