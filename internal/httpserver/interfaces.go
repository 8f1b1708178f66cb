package httpserver

import (
	"context"
	"time"

	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/appstate"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
}

// Pinger is implemented by components whose liveness the health endpoint
// verifies on demand (e.g. the control loop's last-tick freshness).
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
