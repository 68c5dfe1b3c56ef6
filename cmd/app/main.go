package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tebnews/TEBNews_Go/internal/auth"
	"github.com/tebnews/TEBNews_Go/internal/bootstrap"
	"github.com/tebnews/TEBNews_Go/internal/config"
	"github.com/tebnews/TEBNews_Go/internal/database"
	"github.com/tebnews/TEBNews_Go/internal/server"
	"github.com/tebnews/TEBNews_Go/internal/sse"
	"github.com/tebnews/TEBNews_Go/migrations"
)

const shutdownTimeout = 15 * time.Second

func main() {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment validation failed, falling back to defaults", "error", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("%s: %w", bootstrap.ErrMsgFailedConnectDB, err)
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, dbPool, migrations.FS); err != nil {
			dbPool.Close()
			return fmt.Errorf("%s: %w", bootstrap.ErrMsgFailedRunMigrations, err)
		}
	} else {
		slog.Info(bootstrap.LogMsgMigrationsSkipped)
	}

	events, err := bootstrap.InitializeEventSystem(ctx, cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	services := bootstrap.InitializeServices(cfg, repos, events.Publisher, events.Redis)

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:    events.Bus,
		UserService: services.User,
		Hub:         hub,
	}); err != nil {
		dbPool.Close()
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		StateTTL:       cfg.StateTTL,
	}, dbPool, services, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Hub:                hub,
		Relay:              events.Relay,
		Redis:              events.Redis,
		ResilientPublisher: events.Publisher,
		DBPool:             dbPool,
	})
	return nil
}
