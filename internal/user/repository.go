package user

import (
	"context"

	"github.com/evimeria/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
