package app

import (
	"context"
	"os"
	"time"

	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/appstate"
	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterShutdowner(shutdowner shutdown.Shutdowner)
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	Shutdown(ctx context.Context) error
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
}
