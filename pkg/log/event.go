package log

import (
	"strings"
	"time"
)

// Event represents a bus trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// HandleID uniquely identifies the device handle (UUID).
	HandleID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to the bus master.
	Direction Direction `cbor:"3,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Device names the device profile (e.g. "fm24cl16b").
	Device string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Transfer    *TransferEvent    `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Direction indicates data flow relative to the bus master.
type Direction uint8

const (
	// DirectionOut indicates bytes sent by the master (transmit).
	DirectionOut Direction = 0
	// DirectionIn indicates bytes clocked in from the device (receive).
	DirectionIn Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "OUT"
	case DirectionIn:
		return "IN"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses a case-insensitive direction name.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "out", "tx":
		return DirectionOut, true
	case "in", "rx":
		return DirectionIn, true
	}
	return 0, false
}

// Kind classifies the event type.
type Kind uint8

const (
	// KindTransfer indicates a bus transaction.
	KindTransfer Kind = 0
	// KindState indicates a handle state change.
	KindState Kind = 1
	// KindError indicates a failed operation.
	KindError Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "TRANSFER"
	case KindState:
		return "STATE"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a case-insensitive kind name.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "transfer":
		return KindTransfer, true
	case "state":
		return KindState, true
	case "error":
		return KindError, true
	}
	return 0, false
}

// TransferEvent captures one transmit or receive on the bus.
type TransferEvent struct {
	// BusAddress is the 8-bit page-qualified bus address.
	BusAddress uint8 `cbor:"1,keyasint"`

	// Page is the page index encoded in BusAddress.
	Page uint8 `cbor:"2,keyasint"`

	// Row is the in-page offset the transaction starts at. For current
	// address reads this is the tracked cursor position.
	Row uint8 `cbor:"3,keyasint"`

	// Size is the number of bytes on the wire after the bus address.
	Size int `cbor:"4,keyasint"`

	// Data is the transferred bytes (may be truncated for large transfers).
	Data []byte `cbor:"5,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"6,keyasint,omitempty"`

	// Sequential marks a current-address read that sent no address byte.
	Sequential bool `cbor:"7,keyasint,omitempty"`

	// Async marks an interrupt-driven transmit.
	Async bool `cbor:"8,keyasint,omitempty"`

	// Duration is how long the transport call took.
	Duration time.Duration `cbor:"9,keyasint,omitempty"`
}

// StateChangeEvent captures handle lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state.
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`
}

// ErrorEventData captures a failed operation.
type ErrorEventData struct {
	// Operation is the driver operation that failed (e.g. "write", "dump").
	Operation string `cbor:"1,keyasint"`

	// Address is the logical address the operation targeted.
	Address uint32 `cbor:"2,keyasint"`

	// Message is the error text.
	Message string `cbor:"3,keyasint"`
}

// MaxTraceData is the number of payload bytes kept per TransferEvent.
const MaxTraceData = 64

// TruncateData copies data for inclusion in a TransferEvent, keeping at most
// MaxTraceData bytes.
func TruncateData(data []byte) ([]byte, bool) {
	n := len(data)
	truncated := false
	if n > MaxTraceData {
		n = MaxTraceData
		truncated = true
	}
	out := make([]byte, n)
	copy(out, data)
	return out, truncated
}
