package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/tasker-api/internal/apidoc"
	"github.com/dimitrije/tasker-api/internal/config"
	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/handlers"
	"github.com/dimitrije/tasker-api/internal/logger"
	authmw "github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/scheduler"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logr.Fatal("failed to run migrations", zap.Error(err))
	}

	doc, err := apidoc.Load(ctx)
	if err != nil {
		logr.Fatal("failed to load api description", zap.Error(err))
	}

	hub := sse.NewHub()
	go hub.Run()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService)
	tokenService := services.NewTokenService(db)
	accessService := services.NewAccessService(db)
	teamService := services.NewTeamService(db, accessService, userService)
	projectService := services.NewProjectService(db, accessService)
	processTypeService := services.NewProcessTypeService(db, accessService)
	taskLogService := services.NewTaskLogService(db, accessService, hub)
	taskService := services.NewTaskService(db, accessService, processTypeService, taskLogService)
	searchService := services.NewSearchService(db)
	uploadService := services.NewUploadService(cfg.UploadDir)

	authHandler := handlers.NewAuthHandler(authService, userService, tokenService, jwtService, logr)
	userHandler := handlers.NewUserHandler(userService, logr)
	teamHandler := handlers.NewTeamHandler(teamService, logr)
	projectHandler := handlers.NewProjectHandler(projectService, logr)
	processTypeHandler := handlers.NewProcessTypeHandler(processTypeService, logr)
	taskHandler := handlers.NewTaskHandler(taskService, logr)
	noticeHandler := handlers.NewNoticeHandler(taskLogService, hub, logr)
	commonHandler := handlers.NewCommonHandler(uploadService, searchService, logr)
	docsHandler := handlers.NewDocsHandler(doc)

	jobs, err := scheduler.New(logr)
	if err != nil {
		logr.Fatal("failed to create scheduler", zap.Error(err))
	}
	if err := jobs.RegisterTokenCleanup(ctx, tokenService, cfg.CleanupInterval); err != nil {
		logr.Fatal("failed to register jobs", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(authmw.RequestLogger(logr))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)
	protected.Get("/users/search", userHandler.Search)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:teamId", teamHandler.Get)
	protected.Patch("/teams/:teamId", teamHandler.Update)
	protected.Delete("/teams/:teamId", teamHandler.Delete)
	protected.Get("/teams/:teamId/members", teamHandler.GetMembers)

	protected.Get("/projects", projectHandler.List)
	protected.Post("/projects", projectHandler.Create)
	protected.Get("/projects/:projectId", projectHandler.Get)
	protected.Patch("/projects/:projectId", projectHandler.Update)
	protected.Delete("/projects/:projectId", projectHandler.Delete)
	protected.Patch("/projects/:projectId/status", projectHandler.UpdateStatus)
	protected.Get("/projects/:projectId/summary", projectHandler.Summary)
	protected.Get("/projects/:projectId/stats", projectHandler.Stats)

	protected.Get("/process-types", processTypeHandler.List)
	protected.Post("/process-types", processTypeHandler.Create)
	protected.Delete("/process-types/:id", processTypeHandler.Delete)

	protected.Get("/tasks", taskHandler.List)
	protected.Post("/tasks", taskHandler.Create)
	protected.Get("/tasks/:taskId", taskHandler.Get)
	protected.Patch("/tasks/:taskId", taskHandler.Update)
	protected.Delete("/tasks/:taskId", taskHandler.Delete)
	protected.Patch("/tasks/:taskId/status", taskHandler.UpdateStatus)

	protected.Get("/events", noticeHandler.Events)
	protected.Get("/notices/:teamId", noticeHandler.List)

	protected.Post("/common/upload", commonHandler.Upload)
	protected.Get("/common/search", commonHandler.Search)

	api.Get("/openapi.json", docsHandler.OpenAPI)

	api.Get("/health", func(c *drift.Context) {
		if err := db.Pool.Ping(c.Request.Context()); err != nil {
			c.InternalServerError("database unavailable")
			return
		}
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logr.Info("shutting down server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
}
