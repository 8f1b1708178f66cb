package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sav-labs/dynamic-k8s-resources/internal/app"
	"github.com/sav-labs/dynamic-k8s-resources/internal/config"
	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/appstate"
	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/logging"
	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/shutdown"
)

const terminationFilePath = "/mnt/signal/terminating"

func main() {
	appStart := time.Now()
	// Start listening for signals immediately as first thing, before any other initialization
	signals := shutdown.Notify()
	ctx := context.Background()

	err := run(ctx, signals, appStart)
	if err != nil {
		slog.ErrorContext(ctx, "failed to run", "reason", err)
		// Give the logger some time to flush
		time.Sleep(1 * time.Second)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "bye")
}

func run(ctx context.Context, signals <-chan os.Signal, appStart time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	appState := appstate.New(logger, appStart, terminationFilePath, signals)

	if shutdown.CheckTerminationFile(ctx, logger, terminationFilePath) {
		return fmt.Errorf("termination file present at startup: %s", terminationFilePath)
	}

	application, err := app.New(logger, cfg, appState)
	if err != nil {
		return fmt.Errorf("new application: %w", err)
	}

	return application.Run(ctx)
}
