package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the full catalog schema. Kept portable between Postgres and
// SQLite: cascades declared on the foreign keys, uniqueness on slugs
// (globally for categories and products, per owning category for
// subcategories).
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id           VARCHAR(36) PRIMARY KEY,
    name         VARCHAR(100) NOT NULL,
    slug         VARCHAR(100) NOT NULL UNIQUE,
    description  TEXT NOT NULL DEFAULT '',
    image        TEXT,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS subcategories (
    id           VARCHAR(36) PRIMARY KEY,
    category_id  VARCHAR(36) NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    name         VARCHAR(100) NOT NULL,
    slug         VARCHAR(100) NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL,
    UNIQUE (category_id, slug)
);

CREATE TABLE IF NOT EXISTS products (
    id             VARCHAR(36) PRIMARY KEY,
    category_id    VARCHAR(36) NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    subcategory_id VARCHAR(36) REFERENCES subcategories(id) ON DELETE SET NULL,
    name           VARCHAR(200) NOT NULL,
    slug           VARCHAR(200) NOT NULL UNIQUE,
    description    TEXT NOT NULL DEFAULT '',
    price          NUMERIC(10,2) NOT NULL CHECK (price >= 0),
    stock          INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    available      BOOLEAN NOT NULL DEFAULT TRUE,
    featured       BOOLEAN NOT NULL DEFAULT FALSE,
    is_published   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at     TIMESTAMP NOT NULL,
    updated_at     TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_subcategory ON products(subcategory_id);

CREATE TABLE IF NOT EXISTS product_images (
    id         VARCHAR(36) PRIMARY KEY,
    product_id VARCHAR(36) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    image      TEXT NOT NULL,
    is_main    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

CREATE TABLE IF NOT EXISTS users (
    id            VARCHAR(36) PRIMARY KEY,
    username      VARCHAR(150) NOT NULL UNIQUE,
    email         VARCHAR(254) NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMP NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
