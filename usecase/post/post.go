package post

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

const defaultSearchLimit = 50

// UseCase covers the public blog surface: windowed listing, ranked
// search, view counting, and author-scoped mutations.
type UseCase struct {
	posts       repository.PostRepository
	searchLimit int
	logger      *zap.Logger
}

func New(posts repository.PostRepository, searchLimit int, logger *zap.Logger) *UseCase {
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		posts:       posts,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// Create validates and persists a new post authored by authorID.
func (uc *UseCase) Create(ctx context.Context, authorID string, post *domain.Post) (*domain.Post, error) {
	if post == nil {
		return nil, domain.ErrInvalidPayload
	}
	post.AuthorID = authorID
	post.Normalize()
	if err := post.Validate(); err != nil {
		return nil, err
	}
	return uc.posts.Create(ctx, post)
}

// View returns the post by id and counts the read. viewerID may be
// empty for anonymous readers; an author viewing their own post does
// not inflate the counter.
func (uc *UseCase) View(ctx context.Context, id, viewerID string) (*domain.Post, error) {
	return uc.posts.View(ctx, id, viewerID)
}

// List returns one window of the published posts, newest first, with a
// descriptor locating the window in the whole collection. Page and
// limit fall back to 1 and 10; a page past the end yields an empty
// window, not an error.
func (uc *UseCase) List(ctx context.Context, page, limit int) ([]domain.Post, domain.Pagination, error) {
	page, limit = domain.NormalizePage(page, limit)

	total, err := uc.posts.CountPublished(ctx)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	posts, err := uc.posts.ListPublished(ctx, repository.PostWindow{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return posts, domain.NewPagination(page, limit, total, len(posts)), nil
}

// Search runs ranked full-text search over published posts. The result
// is capped, never windowed; a blank query is rejected so callers fall
// back to listing instead.
func (uc *UseCase) Search(ctx context.Context, query string) ([]domain.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	return uc.posts.SearchPublished(ctx, query, uc.searchLimit)
}

// Update patches the post when authorID wrote it. A foreign post comes
// back as not found, identical to a missing id. The author never
// changes.
func (uc *UseCase) Update(ctx context.Context, id, authorID string, patch repository.PostPatch) (*domain.Post, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}
	return uc.posts.UpdateOwned(ctx, id, authorID, patch)
}

// Delete removes the post when authorID wrote it, with the same
// not-found conflation as Update.
func (uc *UseCase) Delete(ctx context.Context, id, authorID string) error {
	return uc.posts.DeleteOwned(ctx, id, authorID)
}

func validatePatch(patch *repository.PostPatch) error {
	v := domain.NewValidation()
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if n := utf8.RuneCountInString(title); n < domain.PostTitleMin || n > domain.PostTitleMax {
			v.Add("title", "must be between 3 and 200 characters")
		}
		patch.Title = &title
	}
	if patch.Body != nil {
		body := strings.TrimSpace(*patch.Body)
		if n := utf8.RuneCountInString(body); n < domain.PostBodyMin || n > domain.PostBodyMax {
			v.Add("body", "must be between 10 and 5000 characters")
		}
		patch.Body = &body
	}
	if patch.Category != nil && !domain.ValidCategory(*patch.Category) {
		v.Add("category", "unknown category")
	}
	if patch.Tags != nil {
		tags := domain.NormalizeTags(*patch.Tags)
		patch.Tags = &tags
	}
	return v.Err()
}
