package shutdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// Notify returns a channel that will receive SIGTERM and SIGINT signals.
// This should be called as the first thing in main() before any other initialization.
func Notify() <-chan os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

	return signals
}

// Handler cancels the run context when a termination signal arrives.
type Handler struct {
	logger *slog.Logger
	quiter quiter
}

// New creates a new shutdown handler.
func New(logger *slog.Logger, quiter quiter) *Handler {
	return &Handler{
		logger: logger,
		quiter: quiter,
	}
}

// HandleSignals blocks until a termination signal or context cancellation,
// then cancels the run context.
func (h *Handler) HandleSignals(ctx context.Context, cancel func()) {
	select {
	case <-ctx.Done():
		h.logger.InfoContext(ctx, "terminating signal handler due to context done")

		return
	case <-h.quiter.Quit():
	}

	h.logger.InfoContext(ctx, "received termination signal, terminating")

	cancel()
}

// CheckTerminationFile reports whether the termination marker file exists.
// The marker is written by the pod's preStop hook so a restarting process
// does not begin work on a node that is already draining.
func CheckTerminationFile(ctx context.Context, logger *slog.Logger, terminationFile string) bool {
	if terminationFile == "" {
		return false
	}

	_, err := os.Stat(terminationFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.ErrorContext(ctx, "error checking termination file", "error", err, "path", terminationFile)
		}

		return false
	}

	logger.InfoContext(ctx, "termination file found", "path", terminationFile)

	return true
}

// GracefulShutdown shuts down the components in reverse registration order
// under a bounded timeout, collecting all component errors.
func GracefulShutdown(
	originCtx context.Context,
	logger *slog.Logger,
	shutdowners []Shutdowner,
) error {
	// Shutdown continues even if the run context is already cancelled.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(originCtx), defaultShutdownTimeout)
	defer cancel()

	var errs error

	for i := len(shutdowners) - 1; i >= 0; i-- {
		start := time.Now()
		shutdowner := shutdowners[i]

		if err := shutdowner.Shutdown(ctx); err != nil {
			logger.ErrorContext(ctx, "component shutdown failed",
				"component", shutdowner.Name(),
				"duration", time.Since(start),
				"reason", err,
			)

			errs = errors.Join(errs, fmt.Errorf("shutdown %s: %w", shutdowner.Name(), err))

			continue
		}

		logger.InfoContext(ctx, "component shutdown completed",
			"component", shutdowner.Name(),
			"duration", time.Since(start),
		)
	}

	return errs
}
