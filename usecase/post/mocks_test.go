package post

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) View(ctx context.Context, id, viewerID string) (*domain.Post, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListPublished(ctx context.Context, window repository.PostWindow) ([]domain.Post, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) CountPublished(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) SearchPublished(ctx context.Context, query string, limit int) ([]domain.Post, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateOwned(ctx context.Context, id, authorID string, patch repository.PostPatch) (*domain.Post, error) {
	args := m.Called(ctx, id, authorID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) DeleteOwned(ctx context.Context, id, authorID string) error {
	args := m.Called(ctx, id, authorID)
	return args.Error(0)
}
