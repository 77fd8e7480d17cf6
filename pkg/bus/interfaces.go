package bus

import (
	"errors"
	"time"
)

// Transport errors.
var (
	// ErrNack is returned when no device acknowledges the bus address.
	ErrNack = errors.New("bus: address not acknowledged")

	// ErrBusy is returned when a transaction is started while a previous
	// asynchronous transmission is still in flight.
	ErrBusy = errors.New("bus: transport busy")

	// ErrClosed is returned by transports that have been closed.
	ErrClosed = errors.New("bus: transport closed")
)

// Transport is a blocking two-wire bus master.
type Transport interface {
	// Transmit issues a start condition, the bus address, every byte of
	// data and a stop condition.
	Transmit(addr uint8, data []byte, timeout time.Duration) error

	// Receive issues a start condition and the bus address, then clocks
	// len(out) bytes into out.
	Receive(addr uint8, out []byte, timeout time.Duration) error

	// IsReady reports whether the transport can accept a new transaction.
	IsReady() bool
}

// AsyncTransmitter is implemented by transports that can transmit without
// blocking until the stop condition.
type AsyncTransmitter interface {
	// TransmitAsync starts a transmission and returns immediately. data
	// must stay untouched until IsReady returns true.
	TransmitAsync(addr uint8, data []byte) error
}

// AsyncTransport is a Transport that also supports non-blocking transmits.
type AsyncTransport interface {
	Transport
	AsyncTransmitter
}
