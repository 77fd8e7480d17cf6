//go:build !linux

package i2cdev

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// ErrUnsupported is returned by Open on platforms without i2c-dev.
var ErrUnsupported = errors.New("i2cdev: unsupported platform")

// Bus is unavailable on this platform.
type Bus struct{}

// Open always fails on this platform.
func Open(path string, _ ...Option) (*Bus, error) {
	return nil, fmt.Errorf("%w: %s on %s", ErrUnsupported, path, runtime.GOOS)
}

// Transmit implements bus.Transport.
func (*Bus) Transmit(uint8, []byte, time.Duration) error { return ErrUnsupported }

// Receive implements bus.Transport.
func (*Bus) Receive(uint8, []byte, time.Duration) error { return ErrUnsupported }

// IsReady implements bus.Transport.
func (*Bus) IsReady() bool { return false }

// Close implements io.Closer.
func (*Bus) Close() error { return nil }
