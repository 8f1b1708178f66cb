package scaler

import (
	"fmt"
	"time"
)

// Thresholds is the immutable policy configuration, validated once at startup.
type Thresholds struct {
	// ScaleUpThreshold is the usage/request ratio at or above which a
	// container is scaled up.
	ScaleUpThreshold float64

	// ScaleUpUsageMultiplier sizes the new request relative to observed usage.
	ScaleUpUsageMultiplier float64

	// ScaleUpMinGrowth sizes the new request relative to the current request,
	// so a scale-up always grows the allocation by a minimum factor.
	ScaleUpMinGrowth float64

	// ScaleDownThreshold is the usage/request ratio at or below which a
	// container becomes eligible for scale-down.
	ScaleDownThreshold float64

	// ScaleDownUsageMultiplier sizes the new request relative to observed
	// usage, leaving headroom above the low usage.
	ScaleDownUsageMultiplier float64

	// ScaleDownMinDiff is the minimum relative reduction of the current
	// request for a scale-down to be worth applying.
	ScaleDownMinDiff float64

	// MinRequestBytes is the floor for any computed request.
	MinRequestBytes int64

	// Cooldown is the minimum time after any resize before the next
	// scale-down may occur. Scale-up is never blocked by it.
	Cooldown time.Duration
}

// Validate fails fast on threshold combinations that would make the policy
// oscillate or never fire.
func (t Thresholds) Validate() error {
	if t.ScaleUpThreshold <= 0 || t.ScaleUpThreshold > 1 {
		return fmt.Errorf("%w: scale-up threshold %v not in (0,1]", ErrInvalidThresholds, t.ScaleUpThreshold)
	}

	if t.ScaleDownThreshold < 0 || t.ScaleDownThreshold >= 1 {
		return fmt.Errorf("%w: scale-down threshold %v not in [0,1)", ErrInvalidThresholds, t.ScaleDownThreshold)
	}

	// Equal thresholds would make the same sample eligible for both
	// directions and oscillate between up and down.
	if t.ScaleDownThreshold >= t.ScaleUpThreshold {
		return fmt.Errorf(
			"%w: scale-down threshold %v must be below scale-up threshold %v",
			ErrInvalidThresholds, t.ScaleDownThreshold, t.ScaleUpThreshold,
		)
	}

	if t.ScaleUpUsageMultiplier < 1 {
		return fmt.Errorf("%w: scale-up usage multiplier %v below 1", ErrInvalidThresholds, t.ScaleUpUsageMultiplier)
	}

	if t.ScaleUpMinGrowth < 1 {
		return fmt.Errorf("%w: scale-up min growth %v below 1", ErrInvalidThresholds, t.ScaleUpMinGrowth)
	}

	if t.ScaleDownUsageMultiplier < 1 {
		return fmt.Errorf("%w: scale-down usage multiplier %v below 1", ErrInvalidThresholds, t.ScaleDownUsageMultiplier)
	}

	if t.ScaleDownMinDiff < 0 || t.ScaleDownMinDiff >= 1 {
		return fmt.Errorf("%w: scale-down min diff %v not in [0,1)", ErrInvalidThresholds, t.ScaleDownMinDiff)
	}

	if t.MinRequestBytes <= 0 {
		return fmt.Errorf("%w: min request %d must be positive", ErrInvalidThresholds, t.MinRequestBytes)
	}

	if t.Cooldown < 0 {
		return fmt.Errorf("%w: cooldown %s must not be negative", ErrInvalidThresholds, t.Cooldown)
	}

	return nil
}

// Decide maps one container's usage and allocation to a scaling decision.
// It is pure: same inputs always produce the same output.
//
// Scale-up is evaluated first and ignores the cooldown, since avoiding an OOM
// kill outweighs oscillation risk. Scale-down additionally requires the
// cooldown to have elapsed and the reduction to be material.
func Decide(
	usage UsageSample,
	alloc AllocationState,
	lastResize *time.Time,
	now time.Time,
	th Thresholds,
) Decision {
	request := alloc.MemoryRequestBytes

	// No request set: the ratio is unbounded-high, force a scale-up so a
	// mis-provisioned container gets a real allocation.
	if request <= 0 {
		newRequest := clampMin(
			truncMul(usage.MemoryBytes, th.ScaleUpUsageMultiplier),
			th.MinRequestBytes,
		)

		return Decision{
			Kind:            DecisionScaleUp,
			NewRequestBytes: newRequest,
			NewLimitBytes:   scaledLimit(newRequest, alloc),
		}
	}

	ratio := float64(usage.MemoryBytes) / float64(request)

	if ratio >= th.ScaleUpThreshold {
		newRequest := max(
			truncMul(usage.MemoryBytes, th.ScaleUpUsageMultiplier),
			truncMul(request, th.ScaleUpMinGrowth),
		)
		newRequest = clampMin(newRequest, th.MinRequestBytes)

		return Decision{
			Kind:            DecisionScaleUp,
			NewRequestBytes: newRequest,
			NewLimitBytes:   scaledLimit(newRequest, alloc),
		}
	}

	if ratio <= th.ScaleDownThreshold && cooldownElapsed(lastResize, now, th.Cooldown) {
		candidate := clampMin(
			truncMul(usage.MemoryBytes, th.ScaleDownUsageMultiplier),
			th.MinRequestBytes,
		)

		if candidate >= request {
			return Decision{Kind: DecisionNoOp}
		}

		// Skip negligible shrinkage to avoid churn.
		reduction := float64(request-candidate) / float64(request)
		if reduction < th.ScaleDownMinDiff {
			return Decision{Kind: DecisionNoOp}
		}

		return Decision{
			Kind:            DecisionScaleDown,
			NewRequestBytes: candidate,
			NewLimitBytes:   scaledLimit(candidate, alloc),
		}
	}

	return Decision{Kind: DecisionNoOp}
}

func cooldownElapsed(lastResize *time.Time, now time.Time, cooldown time.Duration) bool {
	if lastResize == nil {
		return true
	}

	return now.Sub(*lastResize) >= cooldown
}

// scaledLimit preserves the container's limit/request ratio for the new
// request. Containers without a limit (or without a request to derive the
// ratio from) get limit == request.
func scaledLimit(newRequest int64, alloc AllocationState) int64 {
	if alloc.MemoryLimitBytes <= 0 || alloc.MemoryRequestBytes <= 0 {
		return newRequest
	}

	limitRatio := float64(alloc.MemoryLimitBytes) / float64(alloc.MemoryRequestBytes)

	return truncMul(newRequest, limitRatio)
}

// truncMul multiplies bytes by a float factor and rounds down, so targets
// never request fractional bytes.
func truncMul(bytes int64, factor float64) int64 {
	return int64(float64(bytes) * factor)
}

func clampMin(v, floor int64) int64 {
	if v < floor {
		return floor
	}

	return v
}
