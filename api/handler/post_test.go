package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
	postUC "github.com/taskpress/backend/usecase/post"
)

func newPostHandler(posts *MockPostRepository) *PostHandler {
	return NewPostHandler(postUC.New(posts, 0, nil), nil, nil)
}

func getRequest(uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI(uri)
	return ctx
}

type postListEnvelope struct {
	Status string             `json:"status"`
	Code   string             `json:"code"`
	Data   []domain.Post      `json:"data"`
	Meta   *domain.Pagination `json:"meta"`
}

func decodePosts(t *testing.T, ctx *fasthttp.RequestCtx) postListEnvelope {
	t.Helper()
	var envelope postListEnvelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	return envelope
}

func TestPostHandler_GetPosts(t *testing.T) {
	t.Run("lists a window with its descriptor", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("CountPublished", mock.Anything).Return(12, nil)
		posts.On("ListPublished", mock.Anything, repository.PostWindow{Offset: 5, Limit: 5}).
			Return(make([]domain.Post, 5), nil)

		ctx := getRequest("/api/v1/posts?page=2&limit=5")
		h.GetPosts(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		envelope := decodePosts(t, ctx)
		assert.Len(t, envelope.Data, 5)
		require.NotNil(t, envelope.Meta)
		assert.Equal(t, domain.Pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3, HasMore: true}, *envelope.Meta)
	})

	t.Run("bad page values fall back to defaults", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("CountPublished", mock.Anything).Return(0, nil)
		posts.On("ListPublished", mock.Anything, repository.PostWindow{Offset: 0, Limit: 10}).
			Return([]domain.Post{}, nil)

		ctx := getRequest("/api/v1/posts?page=banana&limit=-3")
		h.GetPosts(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		envelope := decodePosts(t, ctx)
		assert.NotNil(t, envelope.Data)
		assert.Empty(t, envelope.Data)
	})

	t.Run("search switches to the capped ranked path", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("SearchPublished", mock.Anything, "coffee", 50).
			Return([]domain.Post{{ID: "p1", Title: "Coffee Brewing"}}, nil)

		ctx := getRequest("/api/v1/posts?search=coffee&page=3")
		h.GetPosts(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		envelope := decodePosts(t, ctx)
		assert.Len(t, envelope.Data, 1)
		assert.Nil(t, envelope.Meta)
		posts.AssertNotCalled(t, "CountPublished", mock.Anything)
		posts.AssertNotCalled(t, "ListPublished", mock.Anything, mock.Anything)
	})

	t.Run("blank search is rejected", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		ctx := getRequest("/api/v1/posts?search=%20%20")
		h.GetPosts(ctx)

		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
		envelope := decodePosts(t, ctx)
		assert.Equal(t, string(domain.ErrCodeInvalid), envelope.Code)
		posts.AssertNotCalled(t, "SearchPublished", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostHandler_GetPost(t *testing.T) {
	t.Run("anonymous read counts the view", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("View", mock.Anything, "p1", "").Return(&domain.Post{ID: "p1", Views: 8}, nil)

		ctx := getRequest("/api/v1/posts/p1")
		ctx.SetUserValue("id", "p1")
		h.GetPost(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		posts.AssertExpectations(t)
	})

	t.Run("authenticated read passes the viewer", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("View", mock.Anything, "p1", "author-1").
			Return(&domain.Post{ID: "p1", AuthorID: "author-1"}, nil)

		ctx := getRequest("/api/v1/posts/p1")
		ctx.SetUserValue("id", "p1")
		ctx.SetUserValue("auth_user", &domain.User{ID: "author-1"})
		h.GetPost(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		posts.AssertExpectations(t)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("View", mock.Anything, "ghost", "").Return(nil, domain.ErrPostNotFound)

		ctx := getRequest("/api/v1/posts/ghost")
		ctx.SetUserValue("id", "ghost")
		h.GetPost(ctx)

		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
		envelope := decodePosts(t, ctx)
		assert.Equal(t, string(domain.ErrCodeNotFound), envelope.Code)
	})
}

func TestPostHandler_CreatePost(t *testing.T) {
	t.Run("published defaults to true", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("Create", mock.Anything, mock.MatchedBy(func(post *domain.Post) bool {
			return post.Published && post.AuthorID == "u1"
		})).Return(&domain.Post{ID: "p1", Published: true}, nil)

		ctx := postJSON("/api/v1/posts",
			`{"title":"Coffee Brewing","body":"A very long treatise on beans."}`)
		ctx.SetUserValue("auth_user", &domain.User{ID: "u1"})
		h.CreatePost(ctx)

		assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
		posts.AssertExpectations(t)
	})

	t.Run("explicit draft stays unpublished", func(t *testing.T) {
		posts := new(MockPostRepository)
		h := newPostHandler(posts)

		posts.On("Create", mock.Anything, mock.MatchedBy(func(post *domain.Post) bool {
			return !post.Published
		})).Return(&domain.Post{ID: "p1"}, nil)

		ctx := postJSON("/api/v1/posts",
			`{"title":"Coffee Brewing","body":"A very long treatise on beans.","published":false}`)
		ctx.SetUserValue("auth_user", &domain.User{ID: "u1"})
		h.CreatePost(ctx)

		assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
		posts.AssertExpectations(t)
	})
}
