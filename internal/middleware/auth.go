package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskpress/backend/api/transport"
	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/pkg/httpcontext"
	"github.com/taskpress/backend/pkg/token"
	"github.com/taskpress/backend/repository"
)

const authUserKey = "auth_user"

// Authenticator turns bearer tokens into resolved user records. The
// user is looked up on every request, so a deleted account is locked
// out the moment its row disappears, valid token or not.
type Authenticator struct {
	tokens  *token.Service
	users   repository.UserRepository
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func NewAuthenticator(tokens *token.Service, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		tokens:  tokens,
		users:   users,
		adapter: adapter,
		logger:  logger,
	}
}

// Require rejects the request unless a valid bearer token resolves to
// an existing user. On success the user rides on the request context
// for AuthUser / AuthUserID.
func (a *Authenticator) Require(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, err := a.resolve(ctx)
		if err != nil {
			reject(ctx, err)
			return
		}
		ctx.SetUserValue(authUserKey, user)
		next(ctx)
	}
}

// RequireRole runs the Require chain and then gates on the resolved
// user's role.
func (a *Authenticator) RequireRole(role string, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return a.Require(func(ctx *fasthttp.RequestCtx) {
		if user := AuthUser(ctx); user == nil || user.Role != role {
			reject(ctx, domain.ErrForbidden)
			return
		}
		next(ctx)
	})
}

// Optional resolves identity when a valid token is present and lets the
// request through anonymously on any failure. Handlers behind it serve
// both audiences.
func (a *Authenticator) Optional(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if user, err := a.resolve(ctx); err == nil {
			ctx.SetUserValue(authUserKey, user)
		}
		next(ctx)
	}
}

// AuthUser returns the user attached by Require or Optional, or nil on
// an anonymous request.
func AuthUser(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(authUserKey).(*domain.User)
	return user
}

// AuthUserID returns the authenticated user's id, or "" on an
// anonymous request.
func AuthUserID(ctx *fasthttp.RequestCtx) string {
	if user := AuthUser(ctx); user != nil {
		return user.ID
	}
	return ""
}

func (a *Authenticator) resolve(ctx *fasthttp.RequestCtx) (*domain.User, error) {
	raw := extractBearer(ctx)
	if raw == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, domain.ErrTokenExpired
		}
		a.logger.Debug("bearer token rejected", zap.Error(err))
		return nil, domain.ErrTokenInvalid
	}

	stdCtx, cancel := a.adapter.Attach(ctx)
	defer cancel()

	user, err := a.users.GetByID(stdCtx, claims.Subject)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			a.logger.Warn("token for vanished user", zap.String("user_id", claims.Subject))
			return nil, domain.ErrUserGone
		}
		a.logger.Error("user resolution failed", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func extractBearer(ctx *fasthttp.RequestCtx) string {
	header := ctx.Request.Header.Peek("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || string(header[:len(prefix)]) != prefix {
		return ""
	}
	return string(header[len(prefix):])
}

func reject(ctx *fasthttp.RequestCtx, err error) {
	status := http.StatusUnauthorized
	code := domain.ErrCodeUnauthorized
	message := err.Error()

	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeForbidden:
			status = http.StatusForbidden
			code = domain.ErrCodeForbidden
		case domain.ErrCodeRateLimited:
			status = http.StatusTooManyRequests
			code = domain.ErrCodeRateLimited
		case domain.ErrCodeUnavailable:
			status = http.StatusServiceUnavailable
			code = domain.ErrCodeUnavailable
			message = dErr.Message
		}
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.NewError(string(code), message, nil))
	ctx.SetBody(body)
}
