// Package commands implements the fram-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mash-protocol/fram-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	HandleID  string
	Direction *log.Direction
	Kind      *log.Kind
	Page      *uint8
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		HandleID:  f.HandleID,
		Direction: f.Direction,
		Kind:      f.Kind,
		Page:      f.Page,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [handle:id] device KIND DIRECTION
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	handle := shortenHandleID(event.HandleID)

	switch {
	case event.Transfer != nil:
		fmt.Fprintf(w, "%s [handle:%s] %s %-3s %s\n", ts, handle, event.Device, event.Direction, transferLabel(event.Transfer))
		formatTransferDetails(w, event.Direction, event.Transfer)
	case event.StateChange != nil:
		fmt.Fprintf(w, "%s [handle:%s] %s State\n", ts, handle, event.Device)
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		fmt.Fprintf(w, "%s [handle:%s] %s Error\n", ts, handle, event.Device)
		formatErrorDetails(w, event.Error)
	default:
		fmt.Fprintf(w, "%s [handle:%s] %s Unknown\n", ts, handle, event.Device)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenHandleID returns the first 8 characters of the handle ID.
func shortenHandleID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func transferLabel(tr *log.TransferEvent) string {
	switch {
	case tr.Sequential:
		return "Sequential"
	case tr.Async:
		return "Async"
	default:
		return "Transfer"
	}
}

func formatTransferDetails(w io.Writer, dir log.Direction, tr *log.TransferEvent) {
	fmt.Fprintf(w, "  Bus: %#02x  Page: %d  Row: %#02x\n", tr.BusAddress, tr.Page, tr.Row)
	fmt.Fprintf(w, "  Size: %d bytes", tr.Size)
	if tr.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s", formatDuration(tr.Duration))
	}
	fmt.Fprintln(w)

	if len(tr.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(tr.Data))
		if tr.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	} else if dir == log.DirectionIn {
		fmt.Fprintln(w, "  Data: (none)")
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Operation: %s  Address: %#04x\n", err.Operation, err.Address)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	d, ok := log.ParseDirection(s)
	if !ok {
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
	return d, nil
}

// ParseKindFlag parses a kind string from command-line flag (case-insensitive).
func ParseKindFlag(s string) (log.Kind, error) {
	k, ok := log.ParseKind(s)
	if !ok {
		return 0, fmt.Errorf("invalid kind: %s (must be transfer, state, or error)", s)
	}
	return k, nil
}

// ParsePageFlag parses a page index from command-line flag.
func ParsePageFlag(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > 7 {
		return 0, fmt.Errorf("invalid page: %s (must be 0-7)", s)
	}
	return uint8(v), nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for event, err := range reader.All() {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
