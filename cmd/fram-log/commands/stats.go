package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/fram-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents       int
	EventsByKind      map[log.Kind]int
	EventsByDirection map[log.Direction]int
	TransfersByPage   map[uint8]int
	Handles           map[string]*HandleStats
	BytesOut          int
	BytesIn           int
	Sequential        int
	Async             int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// HandleStats holds statistics for a single device handle.
type HandleStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Device    string
	Errors    int
	BusTime   time.Duration
}

// CollectStats reads every event from r.
func CollectStats(r *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByKind:      make(map[log.Kind]int),
		EventsByDirection: make(map[log.Direction]int),
		TransfersByPage:   make(map[uint8]int),
		Handles:           make(map[string]*HandleStats),
	}

	for event, err := range r.All() {
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByKind[event.Kind]++

	// Track time range
	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	h, ok := s.Handles[event.HandleID]
	if !ok {
		h = &HandleStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Handles[event.HandleID] = h
	}
	h.Events++
	if event.Timestamp.After(h.LastSeen) {
		h.LastSeen = event.Timestamp
	}
	if event.Device != "" && h.Device == "" {
		h.Device = event.Device
	}

	switch {
	case event.Transfer != nil:
		tr := event.Transfer
		s.EventsByDirection[event.Direction]++
		s.TransfersByPage[tr.Page]++
		if event.Direction == log.DirectionOut {
			s.BytesOut += tr.Size
		} else {
			s.BytesIn += tr.Size
		}
		if tr.Sequential {
			s.Sequential++
		}
		if tr.Async {
			s.Async++
		}
		h.BusTime += tr.Duration
	case event.Error != nil:
		s.Errors++
		h.Errors++
	}
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats, err := CollectStats(reader)
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== FRAM Bus Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, k := range []log.Kind{log.KindTransfer, log.KindState, log.KindError} {
		if count := stats.EventsByKind[k]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", k.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Transfers by Direction:")
	for _, dir := range []log.Direction{log.DirectionOut, log.DirectionIn} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintf(w, "  %-12s %d\n", "Sequential:", stats.Sequential)
	fmt.Fprintf(w, "  %-12s %d\n", "Async:", stats.Async)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bytes on the Wire:")
	fmt.Fprintf(w, "  %-12s %d\n", "OUT:", stats.BytesOut)
	fmt.Fprintf(w, "  %-12s %d\n", "IN:", stats.BytesIn)
	fmt.Fprintln(w)

	if len(stats.TransfersByPage) > 0 {
		pages := make([]int, 0, len(stats.TransfersByPage))
		for p := range stats.TransfersByPage {
			pages = append(pages, int(p))
		}
		sort.Ints(pages)

		fmt.Fprintln(w, "Transfers by Page:")
		for _, p := range pages {
			fmt.Fprintf(w, "  Page %d:      %d\n", p, stats.TransfersByPage[uint8(p)])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	fmt.Fprintln(w)

	ids := make([]string, 0, len(stats.Handles))
	for id := range stats.Handles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "Handles: %d\n", len(ids))
	for _, id := range ids {
		h := stats.Handles[id]
		fmt.Fprintf(w, "  %s  %-10s events=%d errors=%d bus=%s\n",
			shortenHandleID(id), h.Device, h.Events, h.Errors, formatDuration(h.BusTime))
	}
}
