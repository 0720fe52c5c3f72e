package task

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

// Listing filters accepted by List.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// UseCase covers a user's own tasks. Every operation takes the acting
// user's id and never reaches past their rows.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// Create validates and persists a new task owned by ownerID.
func (uc *UseCase) Create(ctx context.Context, ownerID string, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.UserID = ownerID
	task.Normalize()
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return uc.tasks.Create(ctx, task)
}

// List returns the owner's tasks newest first, narrowed by filter
// (all, active, completed). An empty filter means all.
func (uc *UseCase) List(ctx context.Context, ownerID, filter string) ([]domain.Task, error) {
	repoFilter := repository.TaskFilter{OwnerID: ownerID}
	switch filter {
	case "", FilterAll:
	case FilterActive:
		completed := false
		repoFilter.Completed = &completed
	case FilterCompleted:
		completed := true
		repoFilter.Completed = &completed
	default:
		v := domain.NewValidation()
		v.Add("filter", "must be one of all, active, completed")
		return nil, v.Err()
	}
	return uc.tasks.List(ctx, repoFilter)
}

// Update patches the task when it belongs to ownerID. A task owned by
// someone else comes back as not found, identical to a missing id.
func (uc *UseCase) Update(ctx context.Context, id, ownerID string, patch repository.TaskPatch) (*domain.Task, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}
	return uc.tasks.UpdateOwned(ctx, id, ownerID, patch)
}

// Delete removes the task when it belongs to ownerID, with the same
// not-found conflation as Update.
func (uc *UseCase) Delete(ctx context.Context, id, ownerID string) error {
	return uc.tasks.DeleteOwned(ctx, id, ownerID)
}

func validatePatch(patch *repository.TaskPatch) error {
	v := domain.NewValidation()
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			v.Add("text", "must not be empty")
		} else if utf8.RuneCountInString(text) > domain.TaskTextMax {
			v.Add("text", "must be at most 500 characters")
		}
		patch.Text = &text
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		v.Add("priority", "must be one of low, medium, high")
	}
	if patch.Tags != nil {
		tags := domain.NormalizeTags(*patch.Tags)
		patch.Tags = &tags
	}
	return v.Err()
}
