package fram

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Locker guards a device handle's scratch buffers and transport.
// Lock must give up after its own wait bound.
type Locker interface {
	Lock() error
	Unlock() error
}

var errNotHeld = errors.New("lock not held")

// SemaphoreLock is a Locker backed by a weighted semaphore of size one.
type SemaphoreLock struct {
	sem  *semaphore.Weighted
	wait time.Duration
	held atomic.Bool
}

// NewSemaphoreLock creates a lock whose Lock gives up after wait.
func NewSemaphoreLock(wait time.Duration) *SemaphoreLock {
	return &SemaphoreLock{
		sem:  semaphore.NewWeighted(1),
		wait: wait,
	}
}

// Lock acquires the lock, waiting at most the configured bound.
func (l *SemaphoreLock) Lock() error {
	if l.sem.TryAcquire(1) {
		l.held.Store(true)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.wait)
	defer cancel()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire within %v: %w", l.wait, err)
	}
	l.held.Store(true)
	return nil
}

// Unlock releases the lock. Unlocking a lock that is not held is an error.
func (l *SemaphoreLock) Unlock() error {
	if !l.held.CompareAndSwap(true, false) {
		return errNotHeld
	}
	l.sem.Release(1)
	return nil
}

// Compile-time interface satisfaction check.
var _ Locker = (*SemaphoreLock)(nil)
