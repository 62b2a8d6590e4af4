// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/config"
	"github.com/Shivanand-hulikatti/event-organizer/internal/database"
	"github.com/Shivanand-hulikatti/event-organizer/internal/handler"
	"github.com/Shivanand-hulikatti/event-organizer/internal/logger"
	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/Shivanand-hulikatti/event-organizer/internal/repository"
	"github.com/Shivanand-hulikatti/event-organizer/internal/service"
	"github.com/Shivanand-hulikatti/event-organizer/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// ── 1. Configuration & logging ───────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: !cfg.IsProduction(),
	})
	defer func() { _ = log.Sync() }()

	// ── 2. System of record ──────────────────────────────────────────────
	var (
		events   repository.EventStore
		activity repository.ActivityLog
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		if err := repository.Migrate(ctx, pool); err != nil {
			return err
		}
		events = repository.NewPostgresEventStore(pool)
		activity = repository.NewPostgresActivityLog(pool)
		log.Info("connected to PostgreSQL", zap.String("host", cfg.Database.Host))
	default:
		var seed []model.OrganizerEvent
		if cfg.Store.SeedDemo {
			seed = service.DemoEvents(cfg.Auth.DevOrganizerID, time.Now())
		}
		events = repository.NewMemoryEventStore(seed...)
		activity = repository.NewMemoryActivityLog()
		log.Info("using in-memory store", zap.Int("seeded_events", len(seed)))
	}

	// ── 3. Object storage ────────────────────────────────────────────────
	var uploader storage.Uploader = storage.DisabledUploader{}
	if cfg.Supabase.Enabled() {
		u, err := storage.NewSupabaseUploader(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.ImageBucket)
		if err != nil {
			return err
		}
		uploader = u
	} else {
		log.Warn("SUPABASE_URL/SUPABASE_KEY not set, image uploads are disabled")
	}

	// ── 4. Wire up layers ────────────────────────────────────────────────
	svc := service.NewOrganizerService(events, activity, uploader, log)
	eventHandler := handler.NewEventHandler(svc, log)

	devOrganizer := cfg.Auth.DevOrganizerID
	if cfg.IsProduction() {
		devOrganizer = ""
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger(log))     // structured access log
	r.Use(handler.CORS)

	r.Get("/health", handler.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Use(handler.OrganizerSession(cfg.Auth.JWTSecret, devOrganizer))
		r.Mount("/", eventHandler.Routes())
	})

	// ── 5. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
