package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"shop/api"
	"shop/config"
	"shop/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App HTTP server plus the resources it owns
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	seeder *seeder
	ownsDB bool
}

// Run serves until ctx is cancelled, then shuts down within the configured timeout
func (a *App) Run(ctx context.Context) error {
	if a.config.App.Seed {
		if err := a.seeder.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server starting",
			zap.String("addr", a.server.Addr),
			zap.String("env", a.config.App.Env))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	runErr := g.Wait()
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	logger.Info("Server stopped")
	return nil
}

// Close releases the connection pool when the app opened it
func (a *App) Close() error {
	if !a.ownsDB || a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetServer for tests
func (a *App) GetServer() http.Handler {
	return a.router.GetEngine()
}
