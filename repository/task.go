package repository

import (
	"context"
	"time"

	"github.com/taskpress/backend/domain"
)

// TaskFilter narrows an owner's task listing. Completed nil means both
// open and completed tasks.
type TaskFilter struct {
	OwnerID   string
	Completed *bool
}

// TaskPatch carries optional task mutations; nil fields are left alone.
type TaskPatch struct {
	Text      *string
	Completed *bool
	Priority  *string
	DueDate   *time.Time
	Tags      *[]string
}

// TaskRepository persists tasks. Update and Delete are scoped to the
// owner inside a single statement so a foreign id and a missing id are
// indistinguishable to the caller.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch TaskPatch) (*domain.Task, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
