package commands

import (
	"fmt"
	"time"

	"github.com/mash-protocol/fram-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	HandleID  string
	TimeStart string
	TimeEnd   string
	Direction string
	Kind      string
	Page      string
}

// RunFilter filters the trace file and writes matching events to a new
// file. It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter := log.Filter{
		HandleID: opts.HandleID,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return 0, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return 0, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Direction != "" {
		d, err := ParseDirectionFlag(opts.Direction)
		if err != nil {
			return 0, err
		}
		filter.Direction = &d
	}

	if opts.Kind != "" {
		k, err := ParseKindFlag(opts.Kind)
		if err != nil {
			return 0, err
		}
		filter.Kind = &k
	}

	if opts.Page != "" {
		p, err := ParsePageFlag(opts.Page)
		if err != nil {
			return 0, err
		}
		filter.Page = &p
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	for event, err := range reader.All() {
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}

	if err := logger.Close(); err != nil {
		return count, fmt.Errorf("failed to write output: %w", err)
	}
	if n := logger.Dropped(); n > 0 {
		return count - int(n), fmt.Errorf("failed to encode %d events", n)
	}
	return count, nil
}
