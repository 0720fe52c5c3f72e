package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

const taskColumns = "id, user_id, text, completed, priority, due_date, tags, created_at, updated_at"

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	const query = `
	INSERT INTO tasks (id, user_id, text, completed, priority, due_date, tags)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Text,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.Tags,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, storeErr("task", err)
	}

	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	  AND ($2::boolean IS NULL OR completed = $2)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, filter.OwnerID, filter.Completed)
	if err != nil {
		return nil, storeErr("task", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("task", err)
	}
	return tasks, nil
}

// UpdateOwned applies the patch to the task only when ownerID matches,
// in one statement. Zero rows means missing or foreign, the caller
// cannot tell which.
func (r *taskRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch repository.TaskPatch) (*domain.Task, error) {
	set := newSetBuilder(2)
	if patch.Text != nil {
		set.Set("text", *patch.Text)
	}
	if patch.Completed != nil {
		set.Set("completed", *patch.Completed)
	}
	if patch.Priority != nil {
		set.Set("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		set.Set("due_date", *patch.DueDate)
	}
	if patch.Tags != nil {
		set.Set("tags", *patch.Tags)
	}
	if set.Empty() {
		return r.getOwned(ctx, id, ownerID)
	}

	query := fmt.Sprintf(`
	UPDATE tasks
	SET %s, updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING `+taskColumns, set.Clause())

	args := append([]interface{}{id, ownerID}, set.Args()...)
	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

func (r *taskRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) getOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var due *time.Time

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Text,
		&task.Completed,
		&task.Priority,
		&due,
		&task.Tags,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, storeErr("task", err)
	}

	task.DueDate = due
	return &task, nil
}
