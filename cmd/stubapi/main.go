package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/BurgerClient_Go/internal/bootstrap"
	"github.com/osse101/BurgerClient_Go/internal/config"
	"github.com/osse101/BurgerClient_Go/internal/stubapi"
	"github.com/osse101/BurgerClient_Go/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ingredients, err := stubapi.LoadIngredients(cfg.StubSeedFile, validation.NewSchemaValidator())
	if err != nil {
		slog.Error("Failed to load ingredient seed", "file", cfg.StubSeedFile, "error", err)
		os.Exit(1)
	}

	backend := stubapi.NewBackend(ingredients, stubapi.Options{AccessTTL: cfg.StubAccessTTL})
	srv := stubapi.NewServer(cfg.StubPort, backend)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	if err := bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{Server: srv}); err != nil {
		slog.Error("Shutdown incomplete", "error", err)
		return
	}
	slog.Info(bootstrap.LogMsgServerStopped)
}
