package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mash-protocol/fram-go/pkg/log"
)

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, format, w)
}

func export(reader *log.Reader, format string, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for event, err := range reader.All() {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "handle_id", "device", "kind", "direction", "bus_addr", "page", "row", "size", "data", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for event, err := range reader.All() {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.HandleID,
			event.Device,
			event.Kind.String(),
			"", "", "", "", "", "", "",
		}
		switch {
		case event.Transfer != nil:
			tr := event.Transfer
			row[4] = event.Direction.String()
			row[5] = fmt.Sprintf("%#02x", tr.BusAddress)
			row[6] = strconv.Itoa(int(tr.Page))
			row[7] = strconv.Itoa(int(tr.Row))
			row[8] = strconv.Itoa(tr.Size)
			row[9] = hex.EncodeToString(tr.Data)
		case event.StateChange != nil:
			row[10] = event.StateChange.OldState + " -> " + event.StateChange.NewState
		case event.Error != nil:
			row[10] = fmt.Sprintf("%s@%#04x: %s", event.Error.Operation, event.Error.Address, event.Error.Message)
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
