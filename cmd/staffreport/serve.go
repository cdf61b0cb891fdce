package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/config"
	httptransport "github.com/example/staffing-reports/internal/http"
	"github.com/example/staffing-reports/internal/logging"
	"github.com/example/staffing-reports/internal/persistence/sqlite"
	"github.com/example/staffing-reports/internal/persistence/sqlite/migration"
	"github.com/example/staffing-reports/internal/security"
	"github.com/example/staffing-reports/internal/workbook"
)

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env-file", ".env", "optional dotenv file loaded before the environment is read")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	handler, cleanup, err := buildServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise service", "error", err)
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("staffing report API listening", "addr", server.Addr, "auth_enabled", cfg.AuthEnabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

// buildServer opens and migrates storage and wires the services, handlers
// and middleware. The returned cleanup closes the database.
func buildServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	pool, err := sqlite.NewConnectionPool(ctx, migration.DefaultSQLiteConfig(cfg.SQLiteDSN), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if err := pool.Migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, nil, fmt.Errorf("migrate storage: %w", err)
	}
	cleanup := func() {
		if err := pool.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}

	var verifier httptransport.KeyVerifier
	if cfg.AuthEnabled() {
		keyVerifier, err := security.NewKeyVerifier(cfg.APIKeyHash)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("parse API key hash: %w", err)
		}
		verifier = keyVerifier
	}

	cache := application.NewReportCache(cfg.ReportCacheTTL, cfg.ReportCacheMax)
	schedules := newScheduleRepositoryAdapter(sqlite.NewScheduleRepository(pool))
	reports := newReportRepositoryAdapter(sqlite.NewReportRepository(pool))

	scheduleService := application.NewScheduleServiceWithLogger(schedules, workbook.NewReader(), cache, uuid.NewString, time.Now, logger)
	reportService := application.NewReportService(application.ReportServiceDeps{
		Schedules:   schedules,
		Published:   reports,
		Renderer:    workbook.NewRenderer(),
		Cache:       cache,
		IDGenerator: uuid.NewString,
		Now:         time.Now,
		Logger:      logger,
	})

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Schedules: httptransport.NewScheduleHandlerWithUploadLimit(scheduleService, cfg.MaxUploadBytes, logger),
		Reports:   httptransport.NewReportHandler(reportService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RequireAPIKey(verifier, logger),
		},
	})
	return router, cleanup, nil
}
