package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

func somePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{ID: string(rune('a' + i)), Published: true}
	}
	return posts
}

func TestUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns author and defaults", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		repo.On("Create", ctx, mock.MatchedBy(func(post *domain.Post) bool {
			return post.AuthorID == "u1" &&
				post.Title == "Coffee Brewing" &&
				post.Category == domain.CategoryOther
		})).Return(&domain.Post{ID: "p1"}, nil)

		created, err := uc.Create(ctx, "u1", &domain.Post{
			Title:     "  Coffee Brewing  ",
			Body:      "A very long treatise on beans.",
			Published: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "p1", created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects out-of-bounds fields", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		_, err := uc.Create(ctx, "u1", &domain.Post{Title: "ab", Body: "short"})

		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, v.Fields, "title")
		assert.Contains(t, v.Fields, "body")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to first page of ten", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		repo.On("CountPublished", ctx).Return(25, nil)
		repo.On("ListPublished", ctx, repository.PostWindow{Offset: 0, Limit: 10}).
			Return(somePosts(10), nil)

		posts, meta, err := uc.List(ctx, 0, 0)

		require.NoError(t, err)
		assert.Len(t, posts, 10)
		assert.Equal(t, domain.Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasMore: true}, meta)
	})

	t.Run("windows by page and limit", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		repo.On("CountPublished", ctx).Return(25, nil)
		repo.On("ListPublished", ctx, repository.PostWindow{Offset: 20, Limit: 10}).
			Return(somePosts(5), nil)

		posts, meta, err := uc.List(ctx, 3, 10)

		require.NoError(t, err)
		assert.Len(t, posts, 5)
		assert.False(t, meta.HasMore)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		repo.On("CountPublished", ctx).Return(25, nil)
		repo.On("ListPublished", ctx, repository.PostWindow{Offset: 30, Limit: 10}).
			Return([]domain.Post{}, nil)

		posts, meta, err := uc.List(ctx, 4, 10)

		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.Equal(t, 4, meta.Page)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasMore)
	})

	t.Run("count failure stops the listing", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		storeErr := domain.WrapError(domain.ErrCodeUnavailable, "post store unavailable", assert.AnError)
		repo.On("CountPublished", ctx).Return(0, storeErr)

		_, _, err := uc.List(ctx, 1, 10)

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
		repo.AssertNotCalled(t, "ListPublished", mock.Anything, mock.Anything)
	})
}

func TestUseCase_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query is rejected", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		for _, query := range []string{"", "   ", "\t\n"} {
			_, err := uc.Search(ctx, query)
			assert.ErrorIs(t, err, domain.ErrEmptyQuery, "%q", query)
		}
		repo.AssertNotCalled(t, "SearchPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("trims the query and applies the cap", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		repo.On("SearchPublished", ctx, "coffee", defaultSearchLimit).Return(somePosts(2), nil)

		posts, err := uc.Search(ctx, "  coffee  ")

		require.NoError(t, err)
		assert.Len(t, posts, 2)
		repo.AssertExpectations(t)
	})

	t.Run("configured cap wins", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 7, nil)

		repo.On("SearchPublished", ctx, "coffee", 7).Return([]domain.Post{}, nil)

		_, err := uc.Search(ctx, "coffee")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestUseCase_View(t *testing.T) {
	ctx := context.Background()

	repo := new(MockPostRepository)
	uc := New(repo, 0, nil)

	repo.On("View", ctx, "p1", "").Return(&domain.Post{ID: "p1", Views: 4}, nil)
	repo.On("View", ctx, "p2", "author-1").Return(&domain.Post{ID: "p2", AuthorID: "author-1"}, nil)
	repo.On("View", ctx, "missing", "").Return(nil, domain.ErrPostNotFound)

	anon, err := uc.View(ctx, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 4, anon.Views)

	_, err = uc.View(ctx, "p2", "author-1")
	assert.NoError(t, err)

	_, err = uc.View(ctx, "missing", "")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	repo.AssertExpectations(t)
}

func TestUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("someone else's post reads as missing", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		repo.On("UpdateOwned", ctx, "p1", "intruder", mock.Anything).Return(nil, domain.ErrPostNotFound)

		published := false
		_, err := uc.Update(ctx, "p1", "intruder", repository.PostPatch{Published: &published})

		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("rejects bad patch fields", func(t *testing.T) {
		repo := new(MockPostRepository)
		uc := New(repo, 0, nil)

		title := "ab"
		category := "sports"
		_, err := uc.Update(ctx, "p1", "u1", repository.PostPatch{Title: &title, Category: &category})

		v, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, v.Fields, "title")
		assert.Contains(t, v.Fields, "category")
		repo.AssertNotCalled(t, "UpdateOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
