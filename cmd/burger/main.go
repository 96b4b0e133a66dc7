package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/BurgerClient_Go/internal/bootstrap"
	"github.com/osse101/BurgerClient_Go/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		return 1
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	warnings, err := config.ValidateEnvWithWarnings(cfg)
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		return 1
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Shutdown incomplete", "error", err)
		}
	}()

	c := newCLI(app, os.Stdout, isTerminal(os.Stdout))
	registry := NewRegistry()
	registerCommands(registry, c)
	return dispatch(ctx, registry, c, args)
}

// dispatch runs the named command and maps its outcome to an exit code
func dispatch(ctx context.Context, registry *Registry, c *cli, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		registry.PrintHelp(c.out.w)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	cmd, ok := registry.Get(args[0])
	if !ok {
		c.out.Error("Unknown command %q", args[0])
		registry.PrintHelp(c.out.w)
		return 2
	}

	if err := cmd.Run(ctx, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		c.out.Error("%s", errorMessage(err))
		return 1
	}
	return 0
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
