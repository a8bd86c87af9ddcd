// Package server builds the blog HTTP application from configuration and
// runs it until the process is asked to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/logging"
	"blog/internal/repository"
	"blog/internal/session"

	"github.com/jmoiron/sqlx"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config config.Config
	logger logging.Logger
	db     *sqlx.DB
	server *http.Server
}

func NewApp(ctx context.Context, cfg config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: cfg, logger: logger}

	var (
		posts repository.Posts
		users repository.Users
	)

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn(ctx, "using in-memory storage, data is lost on restart")
		posts = repository.NewMemoryPostRepository()
		users = repository.NewMemoryUserRepository()
	case config.StoragePostgres:
		db, err := database.Open(ctx, database.LoadConfig())
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := database.Migrate(db.DB); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info(ctx, "database connected and migrated")

		app.db = db
		posts = repository.NewPostRepository(db)
		users = repository.NewUserRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	h, err := NewRouter(Deps{
		Posts:       posts,
		Users:       users,
		Store:       session.NewCookieStore(cfg.SessionSecret, cfg.CookieSecure),
		SessionName: cfg.SessionName,
		Log:         logger,
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	app.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	return app, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "server listening", "addr", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (app *App) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "db close failed", "error", err)
		}
		app.db = nil
	}
}
