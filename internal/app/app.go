package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Johnnypham7496/users-api/internal/config"
	"github.com/Johnnypham7496/users-api/internal/database"
	"github.com/Johnnypham7496/users-api/internal/repository"
	"github.com/Johnnypham7496/users-api/internal/server/rest"
	"github.com/Johnnypham7496/users-api/internal/service"
	"github.com/Johnnypham7496/users-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests get to finish after a stop signal.
const ShutdownTimeout = 5 * time.Second

// Run loads the configuration at configPath and serves the API until SIGINT or SIGTERM.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, cfg)
}

// Serve opens the store described by cfg and serves the API until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	db, err := database.NewDatabase(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	userRepository := repository.NewUserRepository(db)

	if cfg.SeedTestData {
		seeded, err := repository.SeedTestData(ctx, userRepository)
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("Seeded test users", "count", len(repository.SeedUsers))
		}
	}

	server := rest.NewServer(
		service.NewUserService(userRepository),
		db,
		rest.WithAddress(cfg.ListenAddress()),
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Users API is listening", "address", server.Addr, "driver", cfg.DatabaseDriver)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to run server on %s: %w", server.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
