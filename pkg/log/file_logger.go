package log

import (
	"bufio"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"
)

// traceBufferSize holds roughly one full dump of an FM24CL16B.
const traceBufferSize = 32 << 10

// FileLogger appends trace events to a CBOR stream file. Writes are
// buffered; Flush or Close pushes them to disk. Safe for concurrent use.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	buf     *bufio.Writer
	enc     *cbor.Encoder
	closed  bool
	dropped atomic.Uint64
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriterSize(f, traceBufferSize)
	return &FileLogger{
		file: f,
		buf:  buf,
		enc:  NewEncoder(buf),
	}, nil
}

// Log appends event. Events that fail to encode, or arrive after Close,
// are counted by Dropped; tracing never fails a bus operation.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.enc.Encode(event) != nil {
		l.dropped.Add(1)
	}
}

// Dropped returns the number of events that were not written.
func (l *FileLogger) Dropped() uint64 {
	return l.dropped.Load()
}

// Flush writes buffered events to the file.
func (l *FileLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	return l.buf.Flush()
}

// Close flushes and closes the file. Further calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	ferr := l.buf.Flush()
	if err := l.file.Close(); err != nil {
		return err
	}
	return ferr
}

var _ Logger = (*FileLogger)(nil)
