package fram

import "time"

// Clock is the time source for readiness deadlines.
// Replace it in tests for deterministic timeouts.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep pauses the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Compile-time interface satisfaction check.
var _ Clock = SystemClock{}
