package log

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see bus traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("handle_id", event.HandleID),
		slog.String("kind", event.Kind.String()),
	}

	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	switch {
	case event.Transfer != nil:
		tr := event.Transfer
		attrs = append(attrs,
			slog.String("direction", event.Direction.String()),
			slog.Uint64("bus_addr", uint64(tr.BusAddress)),
			slog.Uint64("page", uint64(tr.Page)),
			slog.Uint64("row", uint64(tr.Row)),
			slog.Int("size", tr.Size),
		)
		if len(tr.Data) > 0 {
			attrs = append(attrs, slog.String("data", hex.EncodeToString(tr.Data)))
		}
		if tr.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
		if tr.Sequential {
			attrs = append(attrs, slog.Bool("sequential", true))
		}
		if tr.Async {
			attrs = append(attrs, slog.Bool("async", true))
		}
		if tr.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", tr.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("operation", event.Error.Operation),
			slog.Uint64("address", uint64(event.Error.Address)),
			slog.String("error_msg", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "bus", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
