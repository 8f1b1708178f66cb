package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/shutdown"
)

// State represents the application state
type State string

const (
	// StateInit is the initial state when the application is created
	StateInit State = "init"

	// StateStarting is the state when the application is starting up
	StateStarting State = "starting"

	// StateRunning is the state when the application is running normally
	StateRunning State = "running"

	// StateTerminating is the state when the application is shutting down
	StateTerminating State = "terminating"

	// StateTerminated is the final state when the application has terminated
	StateTerminated State = "terminated"
)

const defaultShutdownersCount = 4

// AppState manages the application lifecycle state with thread-safe operations.
type AppState struct {
	mu                  sync.RWMutex
	logger              *slog.Logger
	startedAt           time.Time
	readyAt             *time.Time
	terminatingAt       *time.Time
	state               State
	quit                <-chan os.Signal
	terminationFilePath string
	shutdowners         []shutdown.Shutdowner
}

// New creates a new AppState with the given start time.
func New(
	logger *slog.Logger,
	appStart time.Time,
	terminationFilePath string,
	quit <-chan os.Signal,
) *AppState {
	return &AppState{
		logger:              logger,
		startedAt:           appStart,
		state:               StateInit,
		quit:                quit,
		terminationFilePath: terminationFilePath,
		shutdowners:         make([]shutdown.Shutdowner, 0, defaultShutdownersCount),
	}
}

// RegisterShutdowner adds a component to the graceful shutdown list.
// Components are shut down in reverse registration order.
func (s *AppState) RegisterShutdowner(shutdowner shutdown.Shutdowner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdowners = append(s.shutdowners, shutdowner)
}

// SetStarting transitions the state from Init to Starting
func (s *AppState) SetStarting(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit {
		return fmt.Errorf("set starting: %w", ErrInvalidStateTransition)
	}

	return s.setState(StateStarting)
}

// SetRunning transitions the state from Starting to Running
func (s *AppState) SetRunning(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		// A termination file appearing during initialization means the pod is
		// already draining; turn it into a SIGTERM so the run loop exits.
		if shutdown.CheckTerminationFile(ctx, s.logger, s.terminationFilePath) {
			pid := os.Getpid()
			s.logger.InfoContext(ctx, "termination file found after initialization, sending SIGTERM",
				"pid", pid,
			)

			killErr := syscall.Kill(pid, syscall.SIGTERM)
			if killErr != nil {
				s.logger.ErrorContext(ctx, "failed to send SIGTERM",
					"error", killErr,
					"pid", pid,
				)
			}
		}
	}()

	if s.state != StateStarting {
		return fmt.Errorf("set running: %w", ErrInvalidStateTransition)
	}

	now := time.Now()
	s.readyAt = &now

	return s.setState(StateRunning)
}

// SetTerminating transitions the state to Terminating
func (s *AppState) SetTerminating(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return fmt.Errorf("set terminating: %w", ErrAlreadyTerminated)
	}

	now := time.Now()
	s.terminatingAt = &now

	return s.setState(StateTerminating)
}

// setState is an internal method to set the state
func (s *AppState) setState(newState State) error {
	if s.state == StateTerminated {
		return fmt.Errorf("set state: %w", ErrAlreadyTerminated)
	}

	s.state = newState

	return nil
}

// GetState returns the current application state
func (s *AppState) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// GetStartTime returns the time when the application started
func (s *AppState) GetStartTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.startedAt
}

// GetUptime returns the duration since the application started
func (s *AppState) GetUptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.startedAt)
}

// IsHealthy returns true if the application is in a healthy state (running)
func (s *AppState) IsHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state == StateRunning
}

// IsReady returns true if the application is ready to serve requests (running and readyAt is set)
func (s *AppState) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state == StateRunning && s.readyAt != nil
}

// Quit returns the channel that will receive the signal when shutdown is requested
func (s *AppState) Quit() <-chan os.Signal {
	return s.quit
}

// Shutdown transitions to Terminating, gracefully shuts down all registered
// components in reverse order and ends in the Terminated state.
func (s *AppState) Shutdown(ctx context.Context) error {
	if err := s.SetTerminating(ctx); err != nil {
		return fmt.Errorf("set terminating application state: %w", err)
	}

	s.mu.RLock()
	shutdowners := s.shutdowners
	s.mu.RUnlock()

	err := shutdown.GracefulShutdown(ctx, s.logger, shutdowners)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateTerminated

	return nil
}
