// Package sim provides an in-memory FRAM chip that speaks the bus
// transport protocol.
//
// A Chip keeps an internal address latch like the real part: a transmit
// sets the latch from the page bits of the bus address and the first data
// byte, writes any remaining bytes, and every byte read or written
// advances the latch. Receives always read from the latch, so a receive
// without a preceding transmit continues where the last transfer stopped.
//
// Chips can emulate a busy period after asynchronous transmits, inject
// faults per transaction and persist their memory as raw image files.
package sim
