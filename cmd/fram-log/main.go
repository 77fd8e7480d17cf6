// Command fram-log is a tool for viewing and analyzing FRAM bus trace files.
//
// Trace files are created by the driver's file logger, for example by
// running fram-shell with the -trace flag.
//
// Usage:
//
//	fram-log <command> [flags] <file.ftrace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	fram-log view bus.ftrace
//
//	# View only receives on page 3
//	fram-log view -direction in -page 3 bus.ftrace
//
//	# Export to CSV
//	fram-log export -format csv -o bus.csv bus.ftrace
//
//	# Keep only errors and save to new file
//	fram-log filter -kind error -o errors.ftrace bus.ftrace
//
//	# Show statistics
//	fram-log stats bus.ftrace
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/fram-go/cmd/fram-log/commands"
)

const usage = `fram-log - FRAM Bus Trace Analyzer

Usage:
  fram-log <command> [flags] <file.ftrace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "fram-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// requirePath returns the trace file argument or exits with usage.
func requirePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fram-log view - View trace file in human-readable format

Usage:
  fram-log view [flags] <file.ftrace>

Flags:
`)
		fs.PrintDefaults()
	}

	handle := fs.String("handle", "", "Filter by device handle ID")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	kind := fs.String("kind", "", "Filter by kind (transfer, state, error)")
	page := fs.String("page", "", "Filter transfers by page (0-7)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	filter := commands.ViewFilter{HandleID: *handle}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}

	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fail(err)
		}
		filter.Kind = &k
	}

	if *page != "" {
		p, err := commands.ParsePageFlag(*page)
		if err != nil {
			fail(err)
		}
		filter.Page = &p
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fram-log export - Export trace file to JSON or CSV format

Usage:
  fram-log export [flags] <file.ftrace>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fram-log filter - Filter trace file and write to new file

Usage:
  fram-log filter [flags] <file.ftrace>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	handle := fs.String("handle", "", "Filter by device handle ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	kind := fs.String("kind", "", "Filter by kind (transfer, state, error)")
	page := fs.String("page", "", "Filter transfers by page (0-7)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		HandleID:  *handle,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Direction: *direction,
		Kind:      *kind,
		Page:      *page,
	})
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fram-log stats - Show statistics about the trace file

Usage:
  fram-log stats <file.ftrace>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
