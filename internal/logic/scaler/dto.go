package scaler

import "time"

// PodRef identifies a pod within the cluster.
type PodRef struct {
	Namespace string
	Name      string
}

func (r PodRef) String() string {
	return r.Namespace + "/" + r.Name
}

// ContainerRef identifies a single container within a pod. It is the join key
// correlating usage, allocation and decisions within one tick; it is recomputed
// from the pod listing every tick and never stored.
type ContainerRef struct {
	Namespace string
	Pod       string
	Container string
}

func (r ContainerRef) PodRef() PodRef {
	return PodRef{Namespace: r.Namespace, Name: r.Pod}
}

func (r ContainerRef) String() string {
	return r.Namespace + "/" + r.Pod + "/" + r.Container
}

// UsageSample is one container's observed memory usage. Produced fresh each
// tick and discarded after the tick that consumed it.
type UsageSample struct {
	Ref         ContainerRef
	MemoryBytes int64
	ObservedAt  time.Time
}

// AllocationState is one container's current memory request/limit as reported
// by the API server. Read fresh each tick, never cached across ticks.
// MemoryLimitBytes == 0 means no limit is set on the container.
type AllocationState struct {
	Ref                ContainerRef
	MemoryRequestBytes int64
	MemoryLimitBytes   int64
}

// DecisionKind is the variant tag of a scaling decision.
type DecisionKind string

const (
	DecisionNoOp      DecisionKind = "noop"
	DecisionScaleUp   DecisionKind = "scale-up"
	DecisionScaleDown DecisionKind = "scale-down"
)

// Decision is the pure output of the scaling policy. NewRequestBytes and
// NewLimitBytes are only meaningful when Kind is not DecisionNoOp.
type Decision struct {
	Kind            DecisionKind
	NewRequestBytes int64
	NewLimitBytes   int64
}

// Outcome is the per-container result of one tick, emitted for observability.
type Outcome string

const (
	OutcomeNoOp               Outcome = "noop"
	OutcomeScaledUp           Outcome = "scaled-up"
	OutcomeScaledDown         Outcome = "scaled-down"
	OutcomeSkippedFetchError  Outcome = "skipped-fetch-error"
	OutcomeSkippedMutateError Outcome = "skipped-mutate-error"
)
