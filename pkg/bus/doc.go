// Package bus defines the two-wire bus capabilities consumed by the FRAM
// driver.
//
// A Transport moves bytes to and from a bus address. Addresses are 8-bit
// values in the on-the-wire form: the 7-bit device address shifted left by
// one with the read/write direction in bit 0. An FM24CL16B therefore
// answers writes on 0xA0-0xAE and reads on 0xA1-0xAF, with the page select
// in bits 1-3.
//
// # Implementations
//
//   - sim: an in-memory FRAM chip for tests and offline use
//   - i2cdev: the Linux i2c-dev character device (/dev/i2c-N)
//
// # Interrupt-Driven Transports
//
// Transports that can start a transmission without waiting for it to
// complete implement AsyncTransmitter. Completion is observed through
// IsReady; the caller must not touch the transmitted buffer until IsReady
// reports true again.
package bus
