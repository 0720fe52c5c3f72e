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
	"github.com/taskpress/backend/pkg/token"
	authUC "github.com/taskpress/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc     *authUC.UseCase
	tokens *token.Service
}

func NewAuthHandler(uc *authUC.UseCase, tokens *token.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		tokens:      tokens,
	}
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Register(stdCtx, authUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondWithToken(ctx, http.StatusCreated, user)
}

// @Summary Log in with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondWithToken(ctx, http.StatusOK, user)
}

// @Summary Change the caller's password
// @Tags auth
// @Router /api/v1/profile/password [put]
func (h *AuthHandler) ChangePassword(ctx *fasthttp.RequestCtx) {
	userID := middleware.AuthUserID(ctx)

	var req transport.ChangePasswordRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ChangePassword(stdCtx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *AuthHandler) respondWithToken(ctx *fasthttp.RequestCtx, status int, user *domain.User) {
	signed, err := h.tokens.Issue(token.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "token issue failed", err))
		return
	}
	h.respondSuccess(ctx, status, transport.AuthResponse{User: user, Token: signed})
}
