package scaler

import (
	"context"
	"time"
)

// UsageSource is the port for reading current memory usage per container.
// Containers missing from the result are not an error for the whole call;
// the service skips them for the tick.
type UsageSource interface {
	FetchUsage(
		ctx context.Context,
		labelSelector string,
	) (map[ContainerRef]UsageSample, error)
}

// AllocationSource is the port for reading current requests/limits per
// container. The result is also the authoritative pod set for the tick.
type AllocationSource interface {
	FetchAllocations(
		ctx context.Context,
		labelSelector string,
	) (map[ContainerRef]AllocationState, error)
}

// Mutator is the port for applying a new memory request/limit to a running
// container in place.
type Mutator interface {
	ApplyResize(
		ctx context.Context,
		ref ContainerRef,
		newRequestBytes,
		newLimitBytes int64,
	) error
}

// CooldownStore is the port for the last-resize timestamp attached to a pod.
// A nil timestamp with a nil error means the pod was never resized.
type CooldownStore interface {
	GetLastResize(ctx context.Context, pod PodRef) (*time.Time, error)
	SetLastResize(ctx context.Context, pod PodRef, at time.Time) error
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}

// conflict is a private interface for checking optimistic-concurrency
// conflicts without importing the adapter package.
type conflict interface {
	IsConflict()
}
