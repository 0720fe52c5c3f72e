package repository

import (
	"context"

	"github.com/taskpress/backend/domain"
)

// UserPatch carries optional profile mutations; nil fields are left alone.
type UserPatch struct {
	Name   *string
	Avatar *string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
}
