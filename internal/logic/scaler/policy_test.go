package scaler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

const mib = int64(1024 * 1024)

func testThresholds() scaler.Thresholds {
	return scaler.Thresholds{
		ScaleUpThreshold:         0.8,
		ScaleUpUsageMultiplier:   1.4,
		ScaleUpMinGrowth:         1.2,
		ScaleDownThreshold:       0.3,
		ScaleDownUsageMultiplier: 2.5,
		ScaleDownMinDiff:         0.2,
		MinRequestBytes:          100 * mib,
		Cooldown:                 10 * time.Minute,
	}
}

func testRef() scaler.ContainerRef {
	return scaler.ContainerRef{
		Namespace: "default",
		Pod:       "test-pod",
		Container: "app",
	}
}

func testUsage(memoryBytes int64) scaler.UsageSample {
	return scaler.UsageSample{
		Ref:         testRef(),
		MemoryBytes: memoryBytes,
		ObservedAt:  time.Now(),
	}
}

func testAlloc(requestBytes, limitBytes int64) scaler.AllocationState {
	return scaler.AllocationState{
		Ref:                testRef(),
		MemoryRequestBytes: requestBytes,
		MemoryLimitBytes:   limitBytes,
	}
}

func TestDecide_ScaleUp(t *testing.T) {
	t.Parallel()

	now := time.Now()
	th := testThresholds()

	t.Run("min growth dominates", func(t *testing.T) {
		t.Parallel()

		// usage*1.4 = 1190Mi but request*1.2 = 1200Mi wins.
		got := scaler.Decide(testUsage(850*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
		require.Equal(t, 1200*mib, got.NewRequestBytes)
		require.GreaterOrEqual(t, got.NewRequestBytes, 1190*mib)
	})

	t.Run("usage multiplier dominates", func(t *testing.T) {
		t.Parallel()

		// usage*1.4 = 1400Mi beats request*1.2 = 1200Mi.
		got := scaler.Decide(testUsage(1000*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
		require.Equal(t, 1400*mib, got.NewRequestBytes)
	})

	t.Run("ratio exactly at threshold scales up", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(800*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
	})

	t.Run("ignores active cooldown", func(t *testing.T) {
		t.Parallel()

		lastResize := now.Add(-time.Minute)

		got := scaler.Decide(testUsage(850*mib), testAlloc(1000*mib, 0), &lastResize, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
	})

	t.Run("zero request forces scale-up", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(500*mib), testAlloc(0, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
		require.Equal(t, 700*mib, got.NewRequestBytes)
	})

	t.Run("zero request clamps to floor", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(10*mib), testAlloc(0, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
		require.Equal(t, th.MinRequestBytes, got.NewRequestBytes)
	})

	t.Run("no limit sets limit to request", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(850*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, got.NewRequestBytes, got.NewLimitBytes)
	})

	t.Run("limit request ratio preserved", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(850*mib), testAlloc(1000*mib, 2000*mib), nil, now, th)

		require.Equal(t, scaler.DecisionScaleUp, got.Kind)
		require.Equal(t, 2*got.NewRequestBytes, got.NewLimitBytes)
	})
}

func TestDecide_ScaleDown(t *testing.T) {
	t.Parallel()

	now := time.Now()
	th := testThresholds()

	t.Run("material reduction after cooldown", func(t *testing.T) {
		t.Parallel()

		// usage*2.5 = 500Mi, reduction 50% >= 20%.
		got := scaler.Decide(testUsage(200*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleDown, got.Kind)
		require.Equal(t, 500*mib, got.NewRequestBytes)
	})

	t.Run("elapsed cooldown allows scale-down", func(t *testing.T) {
		t.Parallel()

		lastResize := now.Add(-11 * time.Minute)

		got := scaler.Decide(testUsage(200*mib), testAlloc(1000*mib, 0), &lastResize, now, th)

		require.Equal(t, scaler.DecisionScaleDown, got.Kind)
	})

	t.Run("active cooldown blocks scale-down", func(t *testing.T) {
		t.Parallel()

		lastResize := now.Add(-time.Minute)

		got := scaler.Decide(testUsage(200*mib), testAlloc(1000*mib, 0), &lastResize, now, th)

		require.Equal(t, scaler.DecisionNoOp, got.Kind)
	})

	t.Run("negligible reduction is noop", func(t *testing.T) {
		t.Parallel()

		// usage*2.5 = 850Mi, reduction 15% < 20%.
		got := scaler.Decide(testUsage(340*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionNoOp, got.Kind)
	})

	t.Run("candidate clamps to floor", func(t *testing.T) {
		t.Parallel()

		// usage*2.5 = 25Mi, floor 100Mi wins; reduction from 1000Mi is material.
		got := scaler.Decide(testUsage(10*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionScaleDown, got.Kind)
		require.Equal(t, th.MinRequestBytes, got.NewRequestBytes)
	})

	t.Run("candidate at request is noop", func(t *testing.T) {
		t.Parallel()

		// ratio 0.4 eligible, but usage*2.5 = 750Mi of 750Mi request.
		got := scaler.Decide(testUsage(300*mib), testAlloc(750*mib, 0), nil, now, scaler.Thresholds{
			ScaleUpThreshold:         0.9,
			ScaleUpUsageMultiplier:   1.4,
			ScaleUpMinGrowth:         1.2,
			ScaleDownThreshold:       0.4,
			ScaleDownUsageMultiplier: 2.5,
			ScaleDownMinDiff:         0,
			MinRequestBytes:          100 * mib,
			Cooldown:                 0,
		})

		require.Equal(t, scaler.DecisionNoOp, got.Kind)
	})

	t.Run("limit request ratio preserved", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(200*mib), testAlloc(1000*mib, 1500*mib), nil, now, th)

		require.Equal(t, scaler.DecisionScaleDown, got.Kind)
		require.Equal(t, 750*mib, got.NewLimitBytes)
	})
}

func TestDecide_NoOp(t *testing.T) {
	t.Parallel()

	now := time.Now()
	th := testThresholds()

	t.Run("ratio between thresholds", func(t *testing.T) {
		t.Parallel()

		got := scaler.Decide(testUsage(750*mib), testAlloc(1000*mib, 0), nil, now, th)

		require.Equal(t, scaler.DecisionNoOp, got.Kind)
	})
}

func TestDecide_Idempotent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	th := testThresholds()
	lastResize := now.Add(-time.Hour)

	usage := testUsage(200 * mib)
	alloc := testAlloc(1000*mib, 2000*mib)

	first := scaler.Decide(usage, alloc, &lastResize, now, th)
	second := scaler.Decide(usage, alloc, &lastResize, now, th)

	require.Equal(t, first, second)
}

func TestThresholds_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(th *scaler.Thresholds)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *scaler.Thresholds) {},
		},
		{
			name: "scale-down threshold above scale-up",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleDownThreshold = 0.9
			},
			wantErr: true,
		},
		{
			name: "equal thresholds oscillate",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleDownThreshold = th.ScaleUpThreshold
			},
			wantErr: true,
		},
		{
			name: "scale-up threshold above one",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleUpThreshold = 1.5
			},
			wantErr: true,
		},
		{
			name: "scale-up usage multiplier below one",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleUpUsageMultiplier = 0.5
			},
			wantErr: true,
		},
		{
			name: "scale-up min growth below one",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleUpMinGrowth = 0.9
			},
			wantErr: true,
		},
		{
			name: "scale-down usage multiplier below one",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleDownUsageMultiplier = 0.99
			},
			wantErr: true,
		},
		{
			name: "scale-down min diff at one",
			mutate: func(th *scaler.Thresholds) {
				th.ScaleDownMinDiff = 1
			},
			wantErr: true,
		},
		{
			name: "zero min request",
			mutate: func(th *scaler.Thresholds) {
				th.MinRequestBytes = 0
			},
			wantErr: true,
		},
		{
			name: "negative cooldown",
			mutate: func(th *scaler.Thresholds) {
				th.Cooldown = -time.Second
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th := testThresholds()
			tt.mutate(&th)

			err := th.Validate()
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, scaler.ErrInvalidThresholds)

				return
			}

			require.NoError(t, err)
		})
	}
}
