package scaler

import "errors"

var (
	ErrFetchUsage        = errors.New("fetch usage")
	ErrFetchAllocations  = errors.New("fetch allocations")
	ErrInvalidThresholds = errors.New("invalid thresholds")
)
