// Package i2cdev drives a two-wire bus through the Linux i2c-dev interface.
//
// The kernel addresses devices by their 7-bit address and adds the
// direction bit itself, so the 8-bit bus addresses used by the driver are
// shifted right by one before selecting the slave.
package i2cdev

import "time"

// Option configures Open.
type Option func(*options)

type options struct {
	retries int
}

// WithRetries sets the adapter's retry count on a NACK.
func WithRetries(n int) Option {
	return func(o *options) { o.retries = n }
}

// SlaveAddress converts an 8-bit bus address to the 7-bit kernel form.
func SlaveAddress(addr uint8) int {
	return int(addr >> 1)
}

// timeoutUnits converts d to the adapter's 10 ms timeout units, rounding up.
func timeoutUnits(d time.Duration) int {
	const unit = 10 * time.Millisecond
	n := int((d + unit - 1) / unit)
	if n < 1 {
		n = 1
	}
	return n
}
