package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/pkg/httpcontext"
	profileUC "github.com/taskpress/backend/usecase/profile"
)

// AdminHandler serves the role-gated account listing. The router mounts
// it behind RequireRole(admin).
type AdminHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewAdminHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List all accounts
// @Tags admin
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	page := parseInt(string(args.Peek("page")), domain.DefaultPage)
	limit := parseInt(string(args.Peek("limit")), domain.DefaultLimit)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, pagination, err := h.uc.ListUsers(stdCtx, page, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	h.respondSuccessMeta(ctx, http.StatusOK, users, pagination)
}
