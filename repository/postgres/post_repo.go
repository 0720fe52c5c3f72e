package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

const postColumns = "id, author_id, title, body, category, tags, views, published, COALESCE(image, ''), created_at, updated_at"

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a Postgres-backed PostRepository implementation.
func NewPostRepository(pool *pgxpool.Pool) repository.PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if post == nil {
		return nil, domain.ErrInvalidPayload
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	const query = `
	INSERT INTO posts (id, author_id, title, body, category, tags, published, image)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
	RETURNING views, created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Body,
		post.Category,
		post.Tags,
		post.Published,
		post.Image,
	).Scan(&post.Views, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, storeErr("post", err)
	}

	return post, nil
}

// View returns the post and bumps the view counter in the same
// statement. Authors reading their own post do not count as a view.
func (r *postRepository) View(ctx context.Context, id, viewerID string) (*domain.Post, error) {
	const query = `
	UPDATE posts
	SET views = views + (CASE WHEN author_id = $2 THEN 0 ELSE 1 END)
	WHERE id = $1
	RETURNING ` + postColumns
	return scanPost(r.pool.QueryRow(ctx, query, id, viewerID))
}

func (r *postRepository) ListPublished(ctx context.Context, window repository.PostWindow) ([]domain.Post, error) {
	const query = `
	SELECT ` + postColumns + `
	FROM posts
	WHERE published = TRUE
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, clampLimit(window.Limit), window.Offset)
	if err != nil {
		return nil, storeErr("post", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepository) CountPublished(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE published = TRUE`).Scan(&total); err != nil {
		return 0, storeErr("post", err)
	}
	return total, nil
}

// SearchPublished matches the query against title and body of published
// posts, best rank first. Ties fall back to recency so the order stays
// stable.
func (r *postRepository) SearchPublished(ctx context.Context, query string, limit int) ([]domain.Post, error) {
	const sql = `
	SELECT ` + postColumns + `
	FROM posts
	WHERE published = TRUE
	  AND to_tsvector('english', title || ' ' || body) @@ plainto_tsquery('english', $1)
	ORDER BY ts_rank(to_tsvector('english', title || ' ' || body), plainto_tsquery('english', $1)) DESC,
		created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, sql, query, clampLimit(limit))
	if err != nil {
		return nil, storeErr("post", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// UpdateOwned applies the patch to the post only when authorID matches,
// in one statement. Zero rows means missing or foreign, the caller
// cannot tell which.
func (r *postRepository) UpdateOwned(ctx context.Context, id, authorID string, patch repository.PostPatch) (*domain.Post, error) {
	set := newSetBuilder(2)
	if patch.Title != nil {
		set.Set("title", *patch.Title)
	}
	if patch.Body != nil {
		set.Set("body", *patch.Body)
	}
	if patch.Category != nil {
		set.Set("category", *patch.Category)
	}
	if patch.Tags != nil {
		set.Set("tags", *patch.Tags)
	}
	if patch.Image != nil {
		set.Set("image", *patch.Image)
	}
	if patch.Published != nil {
		set.Set("published", *patch.Published)
	}
	if set.Empty() {
		return r.getOwned(ctx, id, authorID)
	}

	query := fmt.Sprintf(`
	UPDATE posts
	SET %s, updated_at = NOW()
	WHERE id = $1 AND author_id = $2
	RETURNING `+postColumns, set.Clause())

	args := append([]interface{}{id, authorID}, set.Args()...)
	return scanPost(r.pool.QueryRow(ctx, query, args...))
}

func (r *postRepository) DeleteOwned(ctx context.Context, id, authorID string) error {
	const query = `DELETE FROM posts WHERE id = $1 AND author_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, authorID)
	if err != nil {
		return storeErr("post", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) getOwned(ctx context.Context, id, authorID string) (*domain.Post, error) {
	const query = `
	SELECT ` + postColumns + `
	FROM posts
	WHERE id = $1 AND author_id = $2
	`
	return scanPost(r.pool.QueryRow(ctx, query, id, authorID))
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("post", err)
	}
	return posts, nil
}

func scanPost(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Post, error) {
	var post domain.Post

	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Body,
		&post.Category,
		&post.Tags,
		&post.Views,
		&post.Published,
		&post.Image,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr("post", err)
	}

	return &post, nil
}
