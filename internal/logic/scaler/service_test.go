package scaler_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler/mocks"
)

type notFoundErr struct{}

func (notFoundErr) Error() string { return "pod not found" }
func (notFoundErr) IsNotFound()   {}

type conflictErr struct{}

func (conflictErr) Error() string { return "resize conflict" }
func (conflictErr) IsConflict()   {}

type serviceMocks struct {
	usage       *mocks.MockUsageSource
	allocations *mocks.MockAllocationSource
	mutator     *mocks.MockMutator
	cooldowns   *mocks.MockCooldownStore
}

func newTestService(t *testing.T) (*scaler.Service, *serviceMocks) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sm := &serviceMocks{
		usage:       mocks.NewMockUsageSource(t),
		allocations: mocks.NewMockAllocationSource(t),
		mutator:     mocks.NewMockMutator(t),
		cooldowns:   mocks.NewMockCooldownStore(t),
	}

	svc := scaler.New(
		logger,
		sm.usage,
		sm.allocations,
		sm.mutator,
		sm.cooldowns,
		testThresholds(),
		30*time.Second,
		"managed=true",
		1,
	)

	return svc, sm
}

func containerRef(pod, container string) scaler.ContainerRef {
	return scaler.ContainerRef{
		Namespace: "default",
		Pod:       pod,
		Container: container,
	}
}

func allocFor(ref scaler.ContainerRef, requestBytes, limitBytes int64) map[scaler.ContainerRef]scaler.AllocationState {
	return map[scaler.ContainerRef]scaler.AllocationState{
		ref: {
			Ref:                ref,
			MemoryRequestBytes: requestBytes,
			MemoryLimitBytes:   limitBytes,
		},
	}
}

func usageFor(ref scaler.ContainerRef, memoryBytes int64) map[scaler.ContainerRef]scaler.UsageSample {
	return map[scaler.ContainerRef]scaler.UsageSample{
		ref: {
			Ref:         ref,
			MemoryBytes: memoryBytes,
			ObservedAt:  time.Now(),
		},
	}
}

func TestService_ReconcileCommand_EmptyCluster(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(map[scaler.ContainerRef]scaler.AllocationState{}, nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(map[scaler.ContainerRef]scaler.UsageSample{}, nil).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_AllocationsFetchError(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(nil, context.DeadlineExceeded).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.Error(t, err)
	require.ErrorIs(t, err, scaler.ErrFetchAllocations)
}

func TestService_ReconcileCommand_UsageFetchError(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(nil, context.DeadlineExceeded).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.Error(t, err)
	require.ErrorIs(t, err, scaler.ErrFetchUsage)
}

func TestService_ReconcileCommand_ScaleUpResizesAndRecordsCooldown(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usageFor(ref, 900*mib), nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, ref.PodRef()).
		Return(nil, nil).
		Once()
	// usage*1.4 = 1260Mi beats request*1.2 = 1200Mi; no limit set, so the
	// new limit equals the new request.
	sm.mutator.EXPECT().
		ApplyResize(mock.Anything, ref, 1260*mib, 1260*mib).
		Return(nil).
		Once()
	sm.cooldowns.EXPECT().
		SetLastResize(mock.Anything, ref.PodRef(), mock.AnythingOfType("time.Time")).
		Return(nil).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_MissingUsageSkipsContainer(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(map[scaler.ContainerRef]scaler.UsageSample{}, nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, ref.PodRef()).
		Return(nil, nil).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_ConflictIsIsolated(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	refA := containerRef("web-a", "app")
	refB := containerRef("web-b", "app")

	allocations := allocFor(refA, 1000*mib, 0)
	allocations[refB] = allocFor(refB, 1000*mib, 0)[refB]

	usages := usageFor(refA, 900*mib)
	usages[refB] = usageFor(refB, 900*mib)[refB]

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocations, nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usages, nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, refA.PodRef()).
		Return(nil, nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, refB.PodRef()).
		Return(nil, nil).
		Once()
	sm.mutator.EXPECT().
		ApplyResize(mock.Anything, refA, 1260*mib, 1260*mib).
		Return(conflictErr{}).
		Once()
	sm.mutator.EXPECT().
		ApplyResize(mock.Anything, refB, 1260*mib, 1260*mib).
		Return(nil).
		Once()
	// The conflicted pod gets no cooldown record; only the applied resize
	// starts a cooldown.
	sm.cooldowns.EXPECT().
		SetLastResize(mock.Anything, refB.PodRef(), mock.AnythingOfType("time.Time")).
		Return(nil).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_CooldownBlocksScaleDown(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")
	recent := time.Now().Add(-time.Minute)

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usageFor(ref, 200*mib), nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, ref.PodRef()).
		Return(&recent, nil).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_CooldownReadFailureSuppressesScaleDown(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	upRef := containerRef("web-1", "app")
	downRef := containerRef("web-1", "sidecar")

	allocations := allocFor(upRef, 1000*mib, 0)
	allocations[downRef] = allocFor(downRef, 1000*mib, 0)[downRef]

	usages := usageFor(upRef, 900*mib)
	usages[downRef] = usageFor(downRef, 200*mib)[downRef]

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocations, nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usages, nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, upRef.PodRef()).
		Return(nil, context.DeadlineExceeded).
		Once()
	// The scale-up goes through despite the unreadable cooldown record; the
	// scale-down of the sibling container is held back until the next tick.
	sm.mutator.EXPECT().
		ApplyResize(mock.Anything, upRef, 1260*mib, 1260*mib).
		Return(nil).
		Once()
	sm.cooldowns.EXPECT().
		SetLastResize(mock.Anything, upRef.PodRef(), mock.AnythingOfType("time.Time")).
		Return(nil).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_PodVanishedBeforeCooldownRead(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usageFor(ref, 900*mib), nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, ref.PodRef()).
		Return(nil, notFoundErr{}).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_PodVanishedBeforeResize(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usageFor(ref, 900*mib), nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, ref.PodRef()).
		Return(nil, nil).
		Once()
	sm.mutator.EXPECT().
		ApplyResize(mock.Anything, ref, 1260*mib, 1260*mib).
		Return(notFoundErr{}).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_ReconcileCommand_CooldownWriteFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	ref := containerRef("web-1", "app")

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(allocFor(ref, 1000*mib, 0), nil).
		Once()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(usageFor(ref, 900*mib), nil).
		Once()
	sm.cooldowns.EXPECT().
		GetLastResize(mock.Anything, ref.PodRef()).
		Return(nil, nil).
		Once()
	sm.mutator.EXPECT().
		ApplyResize(mock.Anything, ref, 1260*mib, 1260*mib).
		Return(nil).
		Once()
	sm.cooldowns.EXPECT().
		SetLastResize(mock.Anything, ref.PodRef(), mock.AnythingOfType("time.Time")).
		Return(context.DeadlineExceeded).
		Once()

	err := svc.ReconcileCommand(t.Context())
	require.NoError(t, err)
}

func TestService_Ping_NotReady(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	err := svc.Ping(t.Context())
	require.Error(t, err)
}

func TestService_Name(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	require.Equal(t, "resource-manager", svc.Name())
}

func TestService_StartAndShutdown(t *testing.T) {
	t.Parallel()

	svc, sm := newTestService(t)

	sm.allocations.EXPECT().
		FetchAllocations(mock.Anything, "managed=true").
		Return(map[scaler.ContainerRef]scaler.AllocationState{}, nil).
		Maybe()
	sm.usage.EXPECT().
		FetchUsage(mock.Anything, "managed=true").
		Return(map[scaler.ContainerRef]scaler.UsageSample{}, nil).
		Maybe()

	ctx, cancel := context.WithCancel(t.Context())

	err := svc.Start(ctx)
	require.NoError(t, err)

	select {
	case <-svc.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("service never became ready")
	}

	require.NoError(t, svc.Ping(t.Context()))

	cancel()

	err = svc.Shutdown(t.Context())
	require.NoError(t, err)
}
