// Package main is the entry point for Torchcrawl.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/exec"

	"github.com/joho/godotenv"

	"github.com/samdwyer/torchcrawl/internal/game"
	"github.com/samdwyer/torchcrawl/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_TORCHCRAWL_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()
	shutdown := setupTelemetry(ctx)

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	err = g.Run(ctx)
	shutdown(ctx)

	switch {
	case errors.Is(err, game.ErrRestart):
		os.Exit(relaunch())
	case err != nil:
		log.Fatalf("Game error: %v", err)
	}
}

// setupTelemetry starts tracing when an API key is configured. The returned
// func flushes pending spans and is always safe to call.
func setupTelemetry(ctx context.Context) func(context.Context) {
	noop := func(context.Context) {}

	cfg, err := telemetry.LoadConfig()
	if err != nil {
		log.Printf("Warning: %v", err)
		return noop
	}

	shutdown, err := telemetry.Setup(ctx, cfg)
	switch {
	case errors.Is(err, telemetry.ErrDisabled):
		log.Printf("Note: %v", err)
		return noop
	case err != nil:
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		return noop
	}

	return func(ctx context.Context) {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}

// relaunch starts a fresh copy of this program with the same arguments and
// returns its exit code.
func relaunch() int {
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("Failed to restart: %v", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		log.Fatalf("Failed to restart: %v", err)
	}
	return 0
}
