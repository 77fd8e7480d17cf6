package log

import (
	"errors"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestEventRoundTripKeepsPayload(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	event := Event{
		Timestamp: ts,
		HandleID:  "h",
		Direction: DirectionIn,
		Kind:      KindTransfer,
		Transfer: &TransferEvent{
			BusAddress: 0xAF,
			Page:       7,
			Row:        0xF8,
			Size:       8,
			Data:       []byte{1, 2, 3, 4, 5, 6, 7, 8},
			Sequential: true,
			Duration:   150 * time.Microsecond,
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}

	if !got.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", got.Timestamp, ts)
	}
	if got.Transfer.Page != 7 || got.Transfer.Row != 0xF8 {
		t.Errorf("location: got page %d row %#x", got.Transfer.Page, got.Transfer.Row)
	}
	if got.Transfer.Duration != 150*time.Microsecond {
		t.Errorf("Duration: got %v", got.Transfer.Duration)
	}
}

func TestDirectionAndKindNames(t *testing.T) {
	tests := []struct {
		in  string
		dir Direction
		ok  bool
	}{
		{"out", DirectionOut, true},
		{"TX", DirectionOut, true},
		{"in", DirectionIn, true},
		{"sideways", 0, false},
	}
	for _, tt := range tests {
		d, ok := ParseDirection(tt.in)
		if ok != tt.ok || (ok && d != tt.dir) {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v, %v", tt.in, d, ok, tt.dir, tt.ok)
		}
	}

	if k, ok := ParseKind("Error"); !ok || k != KindError {
		t.Errorf("ParseKind(Error) = %v, %v", k, ok)
	}
	if KindState.String() != "STATE" {
		t.Errorf("KindState.String() = %q", KindState.String())
	}
	if Direction(9).String() != "UNKNOWN" {
		t.Errorf("Direction(9).String() = %q", Direction(9).String())
	}
}

func TestTruncateData(t *testing.T) {
	short, truncated := TruncateData([]byte{1, 2, 3})
	if truncated || len(short) != 3 {
		t.Errorf("short: len %d truncated %v", len(short), truncated)
	}

	long, truncated := TruncateData(make([]byte, MaxTraceData+10))
	if !truncated || len(long) != MaxTraceData {
		t.Errorf("long: len %d truncated %v", len(long), truncated)
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b []Event
	m := NewMultiLogger(
		LoggerFunc(func(e Event) { a = append(a, e) }),
		nil,
		LoggerFunc(func(e Event) { b = append(b, e) }),
	)

	m.Log(Event{HandleID: "x"})

	if len(a) != 1 || len(b) != 1 {
		t.Errorf("got %d and %d events, want 1 each", len(a), len(b))
	}
}

func TestDecodeEventRejectsDuplicateKeys(t *testing.T) {
	// {2: "a", 2: "b"}
	data := []byte{0xA2, 0x02, 0x61, 'a', 0x02, 0x61, 'b'}

	_, err := DecodeEvent(data)
	var dupErr *cbor.DupMapKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("DecodeEvent: got %v, want DupMapKeyError", err)
	}
}

func TestDecodeEventRejectsOversizedPayload(t *testing.T) {
	data, err := EncodeEvent(Event{
		HandleID: "h",
		Kind:     KindTransfer,
		Transfer: &TransferEvent{Size: MaxTraceData + 1, Data: make([]byte, MaxTraceData+1)},
	})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	if _, err := DecodeEvent(data); !errors.Is(err, ErrMalformed) {
		t.Errorf("DecodeEvent: got %v, want ErrMalformed", err)
	}
}

func TestDecodeEventAcceptsFullPayload(t *testing.T) {
	data, err := EncodeEvent(Event{
		HandleID: "h",
		Kind:     KindTransfer,
		Transfer: &TransferEvent{Size: 2048, Data: make([]byte, MaxTraceData), Truncated: true},
	})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if len(got.Transfer.Data) != MaxTraceData {
		t.Errorf("Data: got %d bytes, want %d", len(got.Transfer.Data), MaxTraceData)
	}
}
