package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/blogsmith/internal/api"
	"github.com/iconidentify/blogsmith/internal/api/handler"
	"github.com/iconidentify/blogsmith/internal/auth"
	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/internal/imagery"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/repository"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
	"github.com/iconidentify/blogsmith/internal/worker"
	"github.com/iconidentify/blogsmith/pkg/imagegen"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("blogsmith %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting blogsmith",
		"version", Version,
		"build_time", BuildTime,
		"llm_provider", cfg.LLM.Provider,
	)

	// Initialize storage
	db, err := repository.OpenSQLite(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	blogRepo := repository.NewSQLiteBlogRepository(db)
	userRepo := repository.NewSQLiteUserRepository(db)
	jobRepo := repository.NewInMemoryJobRepository()

	// Initialize provider clients
	completer, err := llm.NewCompleter(context.Background(), cfg.LLM)
	if err != nil {
		logger.Error("failed to create completion client", "error", err)
		os.Exit(1)
	}
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider == config.ProviderOpenRouter {
		logger.Warn("OPENROUTER_API_KEY is not set; generation requests will fail")
	}

	orchestrator := pipeline.New(completer, pipeline.Models{
		Fast:    cfg.LLM.FastModel,
		Quality: cfg.LLM.QualityModel,
	}, logger)
	images := imagery.NewGenerator(imagegen.NewClient(cfg.Image), cfg.Image, logger)

	// Initialize services
	blogSvc := service.NewBlogService(blogRepo, orchestrator, images, logger)
	authSvc := service.NewAuthService(userRepo, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), logger)
	jobSvc := service.NewJobService(jobRepo, blogSvc, cfg.Worker.MaxRetries, logger)
	imageSvc := service.NewImageService(images, logger)

	// Initialize handlers
	v := validator.NewValidator()
	handlers := api.Handlers{
		Health: handler.NewHealthHandler(db, jobRepo, cfg.Database.Path),
		Auth:   handler.NewAuthHandler(authSvc, v, logger),
		Blog:   handler.NewBlogHandler(blogSvc, v, logger),
		Job:    handler.NewJobHandler(jobSvc, v, logger),
		Image:  handler.NewImageHandler(imageSvc, v),
		Stream: handler.NewStreamHandler(blogSvc, v, cfg.Server.CORSOrigins, logger),
	}

	// Setup router
	router := api.NewRouter(handlers, authSvc, api.RouterConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, logger)

	// Initialize and start worker pool
	pool := worker.NewPool(
		worker.Config{
			Workers:      cfg.Worker.Count,
			PollInterval: cfg.Worker.PollInterval,
		},
		jobRepo,
		jobSvc,
		logger,
	)
	pool.Start()

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting new requests
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Stop workers; in-flight generations are cancelled
	if err := pool.Stop(25 * time.Second); err != nil {
		logger.Error("worker pool shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
