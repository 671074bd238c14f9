// Package main is the entry point for the Thumbsmith server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"thumbsmith/internal/cache"
	"thumbsmith/internal/config"
	"thumbsmith/internal/database"
	"thumbsmith/internal/generator"
	"thumbsmith/internal/handlers"
	"thumbsmith/internal/middleware"
	"thumbsmith/internal/render"
	"thumbsmith/internal/router"
	"thumbsmith/internal/storage"
	"thumbsmith/internal/store"
)

func main() {
	// A .env file is optional; real environment variables win.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", envErr)
	}
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"renderer", cfg.RendererCommand,
	)

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := database.Seed(ctx, db, database.SeedFS); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	for _, dir := range []string{"uploads", "output"} {
		if err := os.MkdirAll(filepath.Join(cfg.PublicDir, dir), 0o755); err != nil {
			slog.Error("failed to create public directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	// Generation history in Valkey is optional.
	var history handlers.GenerationHistory
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, generation history disabled", "error", err)
		} else {
			defer valkeyClient.Close()
			history = cache.NewGenerationLog(valkeyClient, cache.DefaultHistoryKey, cache.DefaultHistorySize)
		}
	} else {
		slog.Info("valkey not configured, generation history disabled")
	}

	// So is the S3 mirror for generated images.
	var mirror handlers.OutputPublisher
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		mirror = storageClient
		slog.Info("s3 mirror enabled", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	templateStore := store.NewTemplateStore(db)
	presetStore := store.NewStylePresetStore(db)
	jsonTemplateStore := store.NewJSONTemplateStore(db)

	gateway := generator.New(cfg.RendererArgv(), cfg.RendererTimeout)
	gen, err := handlers.NewGenerator(gateway, cfg.PublicDir, cfg.MaxUploadBytes(), history, mirror)
	if err != nil {
		slog.Error("failed to initialize generator", "error", err)
		os.Exit(1)
	}
	editor := handlers.NewEditor(renderer, templateStore, presetStore, jsonTemplateStore)
	api := handlers.NewAPI(templateStore, presetStore, jsonTemplateStore, history)

	opts := router.Options{PublicDir: cfg.PublicDir}
	if cfg.GenerateRateLimit > 0 {
		opts.GenerateLimiter = middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
		defer opts.GenerateLimiter.Stop()
	}
	r, err := router.New(editor, api, gen, opts)
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// No write timeout: a render has no upper bound unless RENDERER_TIMEOUT is set.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	// Let post-render mirroring and history writes finish before the
	// Valkey client and database are closed.
	gen.Wait()

	slog.Info("server stopped gracefully")
}
