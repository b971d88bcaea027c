package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/evimeria/catalog-service/internal/apperr"
	"github.com/evimeria/catalog-service/internal/db"
	"github.com/evimeria/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(database *sqlx.DB) *PGRepository {
	return &PGRepository{DB: database}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, username, email, password_hash, is_admin, created_at)
        VALUES (:id, :username, :email, :password_hash, :is_admin, :created_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, u); err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Uniqueness("username " + u.Username)
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET email = :email,
            password_hash = :password_hash,
            is_admin = :is_admin
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, u); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := r.DB.Rebind(`SELECT * FROM users WHERE username = ? LIMIT 1`)

	var u model.User
	if err := r.DB.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(err)
	}
	return &u, nil
}
