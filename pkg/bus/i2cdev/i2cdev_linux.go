//go:build linux

package i2cdev

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/mash-protocol/fram-go/pkg/bus"
)

// i2c-dev ioctl requests from <linux/i2c-dev.h>.
const (
	ioctlRetries = 0x0701
	ioctlTimeout = 0x0702
	ioctlSlave   = 0x0703
)

// Bus is an open /dev/i2c-N adapter. It implements bus.Transport.
type Bus struct {
	mu      sync.Mutex
	path    string
	fd      int
	slave   int
	timeout time.Duration
	closed  bool
}

// Open opens the adapter at path (e.g. "/dev/i2c-1").
func Open(path string, opts ...Option) (*Bus, error) {
	o := options{retries: -1}
	for _, opt := range opts {
		opt(&o)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("i2cdev: open %s: %w", path, err)
	}

	if o.retries >= 0 {
		if err := unix.IoctlSetInt(fd, ioctlRetries, o.retries); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("i2cdev: set retries on %s: %w", path, err)
		}
	}

	return &Bus{path: path, fd: fd, slave: -1}, nil
}

// Transmit implements bus.Transport.
func (b *Bus) Transmit(addr uint8, data []byte, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.prepare(addr, timeout); err != nil {
		return err
	}

	n, err := unix.Write(b.fd, data)
	if err != nil {
		return wrapErrno(addr, err)
	}
	if n != len(data) {
		return fmt.Errorf("i2cdev: %#02x: short write %d of %d bytes", addr, n, len(data))
	}
	return nil
}

// Receive implements bus.Transport.
func (b *Bus) Receive(addr uint8, out []byte, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.prepare(addr, timeout); err != nil {
		return err
	}

	n, err := unix.Read(b.fd, out)
	if err != nil {
		return wrapErrno(addr, err)
	}
	if n != len(out) {
		return fmt.Errorf("i2cdev: %#02x: short read %d of %d bytes", addr, n, len(out))
	}
	return nil
}

// IsReady implements bus.Transport. The kernel completes every transfer
// before returning, so the adapter is always ready between calls.
func (b *Bus) IsReady() bool {
	return true
}

// Close releases the adapter.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return unix.Close(b.fd)
}

// prepare selects the slave for addr and applies timeout. Caller holds mu.
func (b *Bus) prepare(addr uint8, timeout time.Duration) error {
	if b.closed {
		return bus.ErrClosed
	}

	if slave := SlaveAddress(addr); slave != b.slave {
		if err := unix.IoctlSetInt(b.fd, ioctlSlave, slave); err != nil {
			return fmt.Errorf("i2cdev: select %#02x on %s: %w", slave, b.path, err)
		}
		b.slave = slave
	}

	if timeout > 0 && timeout != b.timeout {
		if err := unix.IoctlSetInt(b.fd, ioctlTimeout, timeoutUnits(timeout)); err != nil {
			return fmt.Errorf("i2cdev: set timeout on %s: %w", b.path, err)
		}
		b.timeout = timeout
	}
	return nil
}

func wrapErrno(addr uint8, err error) error {
	switch err {
	case unix.ENXIO, unix.EREMOTEIO:
		return fmt.Errorf("%w: %#02x: %w", bus.ErrNack, addr, err)
	case unix.EBUSY, unix.EAGAIN:
		return fmt.Errorf("%w: %#02x: %w", bus.ErrBusy, addr, err)
	}
	return fmt.Errorf("i2cdev: %#02x: %w", addr, err)
}

// Compile-time interface satisfaction check.
var _ bus.Transport = (*Bus)(nil)
