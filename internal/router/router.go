package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	apiHandler "github.com/taskpress/backend/api/handler"
	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/internal/middleware"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Post    *apiHandler.PostHandler
	Admin   *apiHandler.AdminHandler
	Health  *apiHandler.HealthHandler
}

type Middleware struct {
	Auth          *middleware.Authenticator
	RateLimit     func(fasthttp.RequestHandler) fasthttp.RequestHandler
	ExposeMetrics bool
}

func New(handlers Handlers, mw Middleware) *router.Router {
	r := router.New()

	limited := mw.RateLimit
	if limited == nil {
		limited = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r.GET("/health", handlers.Health.Check)
	if mw.ExposeMetrics {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	}

	// Auth routes
	r.POST("/api/v1/auth/register", limited(handlers.Auth.Register))
	r.POST("/api/v1/auth/login", limited(handlers.Auth.Login))

	// Profile routes
	r.GET("/api/v1/profile", mw.Auth.Require(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", mw.Auth.Require(handlers.Profile.UpdateProfile))
	r.PUT("/api/v1/profile/password", mw.Auth.Require(handlers.Auth.ChangePassword))

	// Task routes
	r.GET("/api/v1/tasks", mw.Auth.Require(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", mw.Auth.Require(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", mw.Auth.Require(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", mw.Auth.Require(handlers.Task.DeleteTask))

	// Post routes. Listing and search are public; single-post reads pick
	// up identity when a token rides along.
	r.GET("/api/v1/posts", handlers.Post.GetPosts)
	r.GET("/api/v1/posts/{id}", mw.Auth.Optional(handlers.Post.GetPost))
	r.POST("/api/v1/posts", mw.Auth.Require(handlers.Post.CreatePost))
	r.PUT("/api/v1/posts/{id}", mw.Auth.Require(handlers.Post.UpdatePost))
	r.DELETE("/api/v1/posts/{id}", mw.Auth.Require(handlers.Post.DeletePost))

	// Admin routes
	r.GET("/api/v1/admin/users", mw.Auth.RequireRole(domain.RoleAdmin, handlers.Admin.ListUsers))

	return r
}
