package fram

import "io"

// Sink receives formatted diagnostic lines from Dump.
//
// Emit must not modify line or retain it after returning; Dump reuses the
// buffer for the next line. Implementations that queue lines must copy them.
type Sink interface {
	Emit(line []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line []byte) error

// Emit calls f(line).
func (f SinkFunc) Emit(line []byte) error { return f(line) }

// WriterSink emits lines to an io.Writer.
type WriterSink struct {
	W io.Writer
}

// Emit writes line to the underlying writer.
func (s WriterSink) Emit(line []byte) error {
	n, err := s.W.Write(line)
	if err != nil {
		return err
	}
	if n < len(line) {
		return io.ErrShortWrite
	}
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ Sink = SinkFunc(nil)
	_ Sink = WriterSink{}
)
