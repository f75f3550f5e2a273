package lib

import (
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Spawner reserves a worker for a task before the task's goroutine is
// started. The returned release func is called once the task has
// finished. An error means the task cannot run at all; the engine treats it
// as fatal for the whole computation.
type Spawner interface {
	Spawn(tid int) (release func(), err error)
}

// BoundedSpawner allows at most a fixed number of tasks to be alive at the
// same time. It never blocks: a reservation beyond the limit fails with
// ErrResourceExhausted. Blocking would deadlock, since every parent holds
// its own slot while it waits for its children.
type BoundedSpawner struct {
	limit int64
	sem   *semaphore.Weighted
}

// NewBoundedSpawner returns a spawner admitting up to limit live tasks.
func NewBoundedSpawner(limit int) *BoundedSpawner {
	if limit < 1 {
		limit = 1
	}
	return &BoundedSpawner{
		limit: int64(limit),
		sem:   semaphore.NewWeighted(int64(limit)),
	}
}

func (s *BoundedSpawner) Spawn(tid int) (func(), error) {
	if !s.sem.TryAcquire(1) {
		return nil, fmt.Errorf("task %d: %w (limit %d)", tid, ErrResourceExhausted, s.limit)
	}
	return func() { s.sem.Release(1) }, nil
}
