package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskpress/backend/api/handler"
	"github.com/taskpress/backend/internal/config"
	"github.com/taskpress/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskpress/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskpress/backend/internal/infrastructure/redis"
	"github.com/taskpress/backend/internal/middleware"
	"github.com/taskpress/backend/internal/router"
	"github.com/taskpress/backend/internal/services/lifecycle"
	"github.com/taskpress/backend/pkg/httpcontext"
	"github.com/taskpress/backend/pkg/logger"
	"github.com/taskpress/backend/pkg/token"
	"github.com/taskpress/backend/repository/postgres"
	redisRepo "github.com/taskpress/backend/repository/redis"
	authUC "github.com/taskpress/backend/usecase/auth"
	postUC "github.com/taskpress/backend/usecase/post"
	profileUC "github.com/taskpress/backend/usecase/profile"
	taskUC "github.com/taskpress/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	postRepo := postgres.NewPostRepository(pool)

	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	authUseCase := authUC.New(userRepo, cfg.Auth.BcryptCost, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	postUseCase := postUC.New(postRepo, cfg.Search.MaxResults, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	authn := middleware.NewAuthenticator(tokens, userRepo, ctxAdapter, zapLogger)

	var rateLimit func(fasthttp.RequestHandler) fasthttp.RequestHandler
	if cfg.RateLimit.Enabled {
		hits := redisRepo.NewRateLimitRepository(redisClient, cfg.RateLimit.Window)
		rateLimit = middleware.RateLimit(hits, cfg.RateLimit.Max, zapLogger)
	}

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, tokens, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Post:    apiHandler.NewPostHandler(postUseCase, ctxAdapter, zapLogger),
		Admin:   apiHandler.NewAdminHandler(profileUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, router.Middleware{
		Auth:          authn,
		RateLimit:     rateLimit,
		ExposeMetrics: cfg.HTTP.EnableMetrics,
	})

	httpHandler := r.Handler
	if cfg.HTTP.EnableMetrics {
		httpHandler = middleware.Metrics(httpHandler)
	}

	server := &fasthttp.Server{
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}
	if cfg.HTTP.MaxConn > 0 {
		server.Concurrency = cfg.HTTP.MaxConn
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
