package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrMalformed is returned when a trace record decodes but cannot have been
// written by FileLogger.
var ErrMalformed = errors.New("log: malformed trace event")

// Bus trace records are an Event map holding at most one payload map, so
// anything deeper or wider is corruption rather than data.
const (
	traceMaxNesting  = 4
	traceMaxPairs    = 16
	traceMaxElements = 16
)

var (
	// traceEncMode writes canonical records with nanosecond timestamps so
	// that identical events produce identical bytes.
	traceEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})

	// traceDecMode only accepts what traceEncMode produces.
	traceDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		MaxNestedLevels:  traceMaxNesting,
		MaxMapPairs:      traceMaxPairs,
		MaxArrayElements: traceMaxElements,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace CBOR encoder mode: %v", err))
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace CBOR decoder mode: %v", err))
	}
	return dm
}

// EncodeEvent encodes an Event to CBOR bytes using integer keys for compactness.
func EncodeEvent(event Event) ([]byte, error) {
	return traceEncMode.Marshal(event)
}

// DecodeEvent decodes a single trace record. Records with duplicate keys,
// excess nesting or an oversized payload are rejected.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := traceDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := checkEvent(event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// checkEvent enforces the limits FileLogger writes under.
func checkEvent(event Event) error {
	if t := event.Transfer; t != nil && len(t.Data) > MaxTraceData {
		return fmt.Errorf("%w: %d payload bytes, limit %d", ErrMalformed, len(t.Data), MaxTraceData)
	}
	return nil
}

// NewEncoder creates a CBOR encoder for trace events that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return traceEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for trace events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return traceDecMode.NewDecoder(r)
}
