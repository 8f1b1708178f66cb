package k8s

// PodNotFoundError represents a "pod vanished" case that is a skip, not a failure.
type PodNotFoundError struct{}

func (e *PodNotFoundError) Error() string {
	return "pod not found"
}

func (e *PodNotFoundError) IsNotFound() {}

var errPodNotFound = &PodNotFoundError{}

// ConflictError represents a patch rejected due to a concurrent modification.
// The next tick's fresh read supersedes it; no in-tick retry.
type ConflictError struct{}

func (e *ConflictError) Error() string {
	return "conflicting concurrent modification"
}

func (e *ConflictError) IsConflict() {}

var errConflict = &ConflictError{}
