package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/bootstrap"
	"github.com/osse101/HunterSystem_Go/internal/config"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/server"
	"github.com/osse101/HunterSystem_Go/internal/sse"
	"github.com/osse101/HunterSystem_Go/internal/worker"

	_ "github.com/osse101/HunterSystem_Go/docs/swagger" // swagger spec for /swagger/*
)

const shutdownTimeout = 30 * time.Second

// @title Hunter System API
// @version 1.0
// @description Leveling, quest rewards and daily login calendar for hunters.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
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
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		return err
	}

	seed, err := bootstrap.LoadSeed(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}

	hub := sse.NewHub()
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: eventBus, SSEHub: hub})

	resetPolicy, err := ledger.ParseResetPolicy(cfg.ResetPolicy)
	if err != nil {
		return err
	}

	hunterService, err := hunter.NewService(store.Snapshots, publisher, seed, hunter.Options{
		Location:    cfg.Location(),
		ResetPolicy: resetPolicy,
		SaveRetries: cfg.SaveRetries,
		CacheSize:   cfg.SessionCacheSize,
		CacheTTL:    cfg.SessionCacheTTL,
	})
	if err != nil {
		return err
	}

	resetWorker := worker.NewResetWorker(hunterService, cfg.Location())
	if resetPolicy != ledger.ResetPolicyNone {
		resetWorker.Start()
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Dependencies{
		Store:   store.Health,
		Hunters: hunterService,
		Resets:  resetWorker,
		SSEHub:  hub,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		HunterService:      hunterService,
		ResetWorker:        resetWorker,
		SSEHub:             hub,
		ResilientPublisher: publisher,
		Store:              store,
	})
	return errors.Join(err, shutdownErr)
}
