package lib

import "errors"

var (
	// ErrInvalidThreadCount is returned when the requested number of
	// threads is not positive.
	ErrInvalidThreadCount = errors.New("thread count must be positive")

	// ErrResourceExhausted is returned when no worker could be reserved for
	// a task. It aborts the whole fingerprint computation.
	ErrResourceExhausted = errors.New("cannot spawn task: resources exhausted")

	// ErrChunkOutOfRange is returned when a plan would place a chunk start
	// outside the mapped region.
	ErrChunkOutOfRange = errors.New("chunk out of range")
)
