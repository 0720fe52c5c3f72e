package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskpress/backend/api/transport"
	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/internal/middleware"
	"github.com/taskpress/backend/pkg/httpcontext"
	"github.com/taskpress/backend/repository"
	postUC "github.com/taskpress/backend/usecase/post"
)

type PostHandler struct {
	baseHandler
	uc *postUC.UseCase
}

func NewPostHandler(uc *postUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List or search published posts
// @Tags posts
// @Router /api/v1/posts [get]
func (h *PostHandler) GetPosts(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// A non-empty search parameter switches to ranked search, which has
	// a result cap instead of pages.
	if query := string(args.Peek("search")); query != "" {
		posts, err := h.uc.Search(stdCtx, query)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		if posts == nil {
			posts = []domain.Post{}
		}
		h.respondSuccess(ctx, http.StatusOK, posts)
		return
	}

	page := parseInt(string(args.Peek("page")), domain.DefaultPage)
	limit := parseInt(string(args.Peek("limit")), domain.DefaultLimit)

	posts, pagination, err := h.uc.List(stdCtx, page, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	h.respondSuccessMeta(ctx, http.StatusOK, posts, pagination)
}

// @Summary Read a single post
// @Tags posts
// @Router /api/v1/posts/{id} [get]
func (h *PostHandler) GetPost(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondError(ctx, domain.ErrPostNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	post, err := h.uc.View(stdCtx, id, middleware.AuthUserID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, post)
}

// @Summary Publish a new post
// @Tags posts
// @Router /api/v1/posts [post]
func (h *PostHandler) CreatePost(ctx *fasthttp.RequestCtx) {
	userID := middleware.AuthUserID(ctx)

	var req transport.PostCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidPayload(ctx)
		return
	}

	post := &domain.Post{
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		Tags:      req.Tags,
		Image:     req.Image,
		Published: req.Published == nil || *req.Published,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, userID, post)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update one of the caller's posts
// @Tags posts
// @Router /api/v1/posts/{id} [put]
func (h *PostHandler) UpdatePost(ctx *fasthttp.RequestCtx) {
	userID := middleware.AuthUserID(ctx)
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondError(ctx, domain.ErrPostNotFound)
		return
	}

	var req transport.PostUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidPayload(ctx)
		return
	}

	patch := repository.PostPatch{
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		Tags:      req.Tags,
		Image:     req.Image,
		Published: req.Published,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, userID, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete one of the caller's posts
// @Tags posts
// @Router /api/v1/posts/{id} [delete]
func (h *PostHandler) DeletePost(ctx *fasthttp.RequestCtx) {
	userID := middleware.AuthUserID(ctx)
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondError(ctx, domain.ErrPostNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
