package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

// UseCase reads and updates account profiles and serves the admin
// account listing.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

// Get returns the account behind userID.
func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// Update patches the caller's own profile. Email, role, and password
// are out of reach here.
func (uc *UseCase) Update(ctx context.Context, userID string, patch repository.UserPatch) (*domain.User, error) {
	v := domain.NewValidation()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if !domain.ValidUserName(name) {
			v.Add("name", "must be between 2 and 50 characters")
		}
		patch.Name = &name
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return uc.users.Update(ctx, userID, patch)
}

// ListUsers pages through every account, newest first. Only the admin
// surface calls this.
func (uc *UseCase) ListUsers(ctx context.Context, page, limit int) ([]domain.User, domain.Pagination, error) {
	page, limit = domain.NormalizePage(page, limit)

	users, total, err := uc.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return users, domain.NewPagination(page, limit, total, len(users)), nil
}
