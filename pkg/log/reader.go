package log

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for filtering trace events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// HandleID filters by exact handle ID match.
	HandleID string

	// Direction filters by data direction. Only transfer events carry a
	// meaningful direction, so setting it also restricts to transfers.
	Direction *Direction

	// Kind filters by event kind.
	Kind *Kind

	// Page filters transfer events by page index.
	Page *uint8

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// matches returns true if the event matches all filter criteria.
func (f *Filter) matches(event Event) bool {
	if f.HandleID != "" && event.HandleID != f.HandleID {
		return false
	}
	if f.Kind != nil && event.Kind != *f.Kind {
		return false
	}
	if f.Direction != nil && (event.Transfer == nil || event.Direction != *f.Direction) {
		return false
	}
	if f.Page != nil && (event.Transfer == nil || event.Transfer.Page != *f.Page) {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// ErrTruncated is returned when a trace ends inside an event, typically
// because the writer was killed before flushing.
var ErrTruncated = errors.New("log: trace ends mid-event")

// Reader streams events from a trace file.
type Reader struct {
	file   *os.File
	dec    *cbor.Decoder
	filter Filter
}

// NewReader opens a trace file for reading every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a trace file, yielding only events that match
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:   f,
		dec:    NewDecoder(bufio.NewReader(f)),
		filter: filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		err := r.dec.Decode(&event)
		switch {
		case err == io.EOF:
			return Event{}, io.EOF
		case errors.Is(err, io.ErrUnexpectedEOF):
			return Event{}, ErrTruncated
		case err != nil:
			return Event{}, err
		}
		if err := checkEvent(event); err != nil {
			return Event{}, err
		}

		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// All iterates the remaining matching events. Iteration stops after the
// first error, which is yielded with a zero Event.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
