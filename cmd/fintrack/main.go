package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/fintrack/internal/changefeed"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/SscSPs/fintrack/internal/handlers"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/repositories/database/pgsql"
	"github.com/SscSPs/fintrack/internal/repositories/database/sqlite"
	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/SscSPs/fintrack/pkg/database"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title FinTrack API
// @version 1.0
// @description Personal finance tracking: transactions, monthly budgets and a live dashboard.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	feed, err := changefeed.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("start change feed: %w", err)
	}
	defer feed.Close()
	logger.Info("Change feed ready", slog.String("backend", cfg.ChangeFeed))

	container := services.NewServiceContainer(cfg, repos, feed)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()
	unregister := container.Auth.OnAuthChange(posthogClient.AuthObserver())
	defer unregister()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.PosthogMiddleware(posthogClient))
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}
	if err := handlers.RegisterRoutes(r, cfg, container, repos.Health); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return feed.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openStore connects to the configured store, applies migrations and returns
// its repositories with a function releasing the connection.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("SQLite store ready", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), func() { db.Close() }, nil
	default:
		logger.Info("Running database migrations...")
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("initialize database pool: %w", err)
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool, logger) }, nil
	}
}
