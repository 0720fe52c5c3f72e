package repository

import (
	"context"

	"github.com/taskpress/backend/domain"
)

// PostWindow is an offset/limit slice of the published listing.
type PostWindow struct {
	Offset int
	Limit  int
}

// PostPatch carries optional post mutations; nil fields are left alone.
// The author can never change.
type PostPatch struct {
	Title     *string
	Body      *string
	Category  *string
	Tags      *[]string
	Image     *string
	Published *bool
}

// PostRepository persists blog posts. UpdateOwned and DeleteOwned are
// author-scoped the same way TaskRepository scopes to the owner.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// View returns the post and bumps its view counter in the same
	// statement, unless viewerID matches the author.
	View(ctx context.Context, id, viewerID string) (*domain.Post, error)
	ListPublished(ctx context.Context, window PostWindow) ([]domain.Post, error)
	CountPublished(ctx context.Context) (int, error)
	// SearchPublished runs ranked full-text search over published posts,
	// best match first, capped at limit. No windowing.
	SearchPublished(ctx context.Context, query string, limit int) ([]domain.Post, error)
	UpdateOwned(ctx context.Context, id, authorID string, patch PostPatch) (*domain.Post, error)
	DeleteOwned(ctx context.Context, id, authorID string) error
}
