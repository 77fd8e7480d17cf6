package log

// Logger is the interface applications implement to receive bus trace events.
// Pass nil or NoopLogger to disable tracing.
type Logger interface {
	// Log records a trace event. Implementations must be thread-safe.
	// The event should be processed quickly; blocking stalls the bus.
	Log(event Event)
}

// LoggerFunc adapts a function to the Logger interface. The function is
// called on the bus goroutine and carries the same constraints as Log.
type LoggerFunc func(event Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// NoopLogger discards all events.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var (
	_ Logger = LoggerFunc(nil)
	_ Logger = NoopLogger{}
)
