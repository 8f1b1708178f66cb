package scaler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/metrics"
)

// Service drives the control loop: one tick per interval, every matching pod,
// end-to-end. Ticks never overlap; the next tick is armed only after the
// previous one completes.
type Service struct {
	logger          *slog.Logger
	usage           UsageSource
	allocations     AllocationSource
	mutator         Mutator
	cooldowns       CooldownStore
	thresholds      Thresholds
	interval        time.Duration
	labelSelector   string
	concurrency     int
	now             func() time.Time
	ready           chan struct{}
	doneCh          chan struct{}
	inShutdown      atomic.Bool
	mu              sync.RWMutex
	lastTickEndTime time.Time
}

// New creates a new scaler service.
func New(
	logger *slog.Logger,
	usage UsageSource,
	allocations AllocationSource,
	mutator Mutator,
	cooldowns CooldownStore,
	thresholds Thresholds,
	interval time.Duration,
	labelSelector string,
	concurrency int,
) *Service {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Service{
		logger:        logger,
		usage:         usage,
		allocations:   allocations,
		mutator:       mutator,
		cooldowns:     cooldowns,
		thresholds:    thresholds,
		interval:      interval,
		labelSelector: labelSelector,
		concurrency:   concurrency,
		now:           time.Now,
		ready:         make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "scaler service is shutting down, skipping start")

		return nil
	}

	go s.RunCommand(ctx)

	return nil
}

// Name returns the name of the service component.
func (s *Service) Name() string {
	return "resource-manager"
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		lastTickAge := s.getLastTickAge()
		if lastTickAge > 2*s.interval {
			return fmt.Errorf("last tick was too long ago: %s", lastTickAge.Round(time.Second).String())
		}

		return nil
	default:
		return fmt.Errorf("scaler service is not ready")
	}
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "scaler service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "scaler service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down scaler service")

	// RunCommand exits when its context is cancelled; wait for it so no
	// mutation is in flight after shutdown returns.
	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before scaler loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "scaler loop exited")
	}

	return nil
}

// RunCommand runs the control loop until the context is cancelled. The timer
// is armed after each tick completes, so a long tick delays the next one
// instead of overlapping it.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("scaler", "RunCommand")

	timer := time.NewTimer(s.interval)
	if !timer.Stop() {
		<-timer.C
	}

	defer timer.Stop()

	s.setLastTickEndTime()
	close(s.ready)

	for {
		err := s.ReconcileCommand(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "tick error", "reason", err)
		}

		s.setLastTickEndTime()
		timer.Reset(s.interval)

		select {
		case <-timer.C:
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating scaler loop")

			return
		}
	}
}

// tickCounts aggregates per-container outcomes across one tick.
type tickCounts struct {
	scaledUp      atomic.Int64
	scaledDown    atomic.Int64
	noop          atomic.Int64
	skippedFetch  atomic.Int64
	skippedMutate atomic.Int64
}

// ReconcileCommand runs one tick of the control loop. A total fetch failure
// returns an error and skips the tick's writes; per-container failures are
// isolated and never abort the tick.
func (s *Service) ReconcileCommand(ctx context.Context) error {
	logger := s.logger.With("scaler", "ReconcileCommand")

	tickStart := s.now()

	allocations, err := s.allocations.FetchAllocations(ctx, s.labelSelector)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchAllocations, err)
	}

	usages, err := s.usage.FetchUsage(ctx, s.labelSelector)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchUsage, err)
	}

	pods := groupByPod(allocations)

	logger.DebugContext(ctx, "starting to process pods", "count", len(pods))
	metrics.SetPodsSeen(len(pods))

	counts := &tickCounts{}

	// Per-pod work is independent; fan out with a bounded pool so the API
	// server and metrics source are not overwhelmed. Containers of one pod
	// stay sequential within their worker.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for pod, allocs := range pods {
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return nil
			default:
			}

			s.processPod(groupCtx, logger, pod, allocs, usages, counts)

			return nil
		})
	}

	// Workers report failures through outcomes, never through the group.
	_ = group.Wait()

	metrics.ObserveTickDuration(s.now().Sub(tickStart))

	logger.InfoContext(ctx, "tick complete",
		"pods", len(pods),
		"scaledUp", counts.scaledUp.Load(),
		"scaledDown", counts.scaledDown.Load(),
		"noop", counts.noop.Load(),
		"skippedFetch", counts.skippedFetch.Load(),
		"skippedMutate", counts.skippedMutate.Load(),
	)

	return nil
}

func (s *Service) processPod(
	ctx context.Context,
	logger *slog.Logger,
	pod PodRef,
	allocs []AllocationState,
	usages map[ContainerRef]UsageSample,
	counts *tickCounts,
) {
	logger = logger.With("pod", pod.Name, "namespace", pod.Namespace)

	now := s.now()

	lastResize, err := s.cooldowns.GetLastResize(ctx, pod)
	if err != nil {
		var target notFound
		if errors.As(err, &target) {
			logger.DebugContext(ctx, "pod vanished before cooldown read, skipping")

			return
		}

		// An unreadable cooldown record must not block a scale-up, but a
		// scale-down without it could oscillate. Treat the cooldown as not
		// elapsed for this tick.
		logger.WarnContext(ctx, "cooldown read failed, scale-down suppressed this tick", "reason", err)

		lastResize = &now
	}

	for i := range allocs {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "context done, stopping pod processing")

			return
		default:
		}

		applied := s.processContainer(ctx, logger, allocs[i], lastResize, now, usages, counts)
		if applied {
			// Cooldown is per pod: a resize of one container starts the
			// clock for its siblings in the same tick.
			lastResize = &now
		}
	}
}

func (s *Service) processContainer(
	ctx context.Context,
	logger *slog.Logger,
	alloc AllocationState,
	lastResize *time.Time,
	now time.Time,
	usages map[ContainerRef]UsageSample,
	counts *tickCounts,
) bool {
	ref := alloc.Ref
	logger = logger.With("container", ref.Container)

	usage, ok := usages[ref]
	if !ok {
		logger.WarnContext(ctx, "no usage sample for container, skipping",
			"outcome", OutcomeSkippedFetchError,
		)
		metrics.RecordSkippedFetchError(ref.Namespace, ref.Pod)
		counts.skippedFetch.Add(1)

		return false
	}

	decision := Decide(usage, alloc, lastResize, now, s.thresholds)

	if decision.Kind == DecisionNoOp {
		logger.DebugContext(ctx, "no resize needed",
			"outcome", OutcomeNoOp,
			"memoryUsage", usage.MemoryBytes,
			"memoryRequest", alloc.MemoryRequestBytes,
		)
		counts.noop.Add(1)

		return false
	}

	return s.applyDecision(ctx, logger, alloc, usage, decision, counts)
}

// applyDecision patches the container and records the cooldown timestamp.
// The record is only written after a successful patch, so a failed mutation
// leaves the stored state consistent with the platform's actual allocation.
func (s *Service) applyDecision(
	ctx context.Context,
	logger *slog.Logger,
	alloc AllocationState,
	usage UsageSample,
	decision Decision,
	counts *tickCounts,
) bool {
	ref := alloc.Ref

	logger = logger.With(
		"decision", string(decision.Kind),
		"memoryUsage", usage.MemoryBytes,
		"beforeRequest", alloc.MemoryRequestBytes,
		"afterRequest", decision.NewRequestBytes,
		"afterLimit", decision.NewLimitBytes,
	)

	err := s.mutator.ApplyResize(ctx, ref, decision.NewRequestBytes, decision.NewLimitBytes)
	if err != nil {
		var notFoundTarget notFound
		if errors.As(err, &notFoundTarget) {
			logger.DebugContext(ctx, "pod vanished before resize, skipping",
				"outcome", OutcomeSkippedMutateError,
			)
			counts.skippedMutate.Add(1)

			return false
		}

		var conflictTarget conflict
		if errors.As(err, &conflictTarget) {
			logger.WarnContext(ctx, "resize conflicted with a concurrent update, next tick re-evaluates",
				"outcome", OutcomeSkippedMutateError,
			)
		} else {
			logger.ErrorContext(ctx, "resize failed, next tick re-evaluates",
				"outcome", OutcomeSkippedMutateError,
				"reason", err,
			)
		}

		metrics.RecordSkippedMutateError(ref.Namespace, ref.Pod)
		counts.skippedMutate.Add(1)

		return false
	}

	outcome := OutcomeScaledUp
	if decision.Kind == DecisionScaleDown {
		outcome = OutcomeScaledDown
		metrics.RecordScaleDown(ref.Namespace, ref.Pod)
		counts.scaledDown.Add(1)
	} else {
		metrics.RecordScaleUp(ref.Namespace, ref.Pod)
		counts.scaledUp.Add(1)
	}

	logger.InfoContext(ctx, "container resized", "outcome", outcome)

	// Both directions reset the cooldown clock: a scale-up also delays the
	// next scale-down.
	if err := s.cooldowns.SetLastResize(ctx, ref.PodRef(), s.now()); err != nil {
		logger.WarnContext(ctx, "cooldown record write failed", "reason", err)
	}

	return true
}

// groupByPod buckets allocations by pod, containers sorted by name so a pod
// is always processed in a stable order.
func groupByPod(allocations map[ContainerRef]AllocationState) map[PodRef][]AllocationState {
	pods := make(map[PodRef][]AllocationState)

	for ref, alloc := range allocations {
		pod := ref.PodRef()
		pods[pod] = append(pods[pod], alloc)
	}

	for pod := range pods {
		sort.Slice(pods[pod], func(i, j int) bool {
			return pods[pod][i].Ref.Container < pods[pod][j].Ref.Container
		})
	}

	return pods
}

func (s *Service) getLastTickAge() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.lastTickEndTime)
}

func (s *Service) setLastTickEndTime() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTickEndTime = time.Now()
}
