// Command visatrace is a tool for viewing and analyzing session trace
// files.
//
// Trace files are created through the trace logging infrastructure,
// for example by running visaterm with the -trace flag.
//
// Usage:
//
//	visatrace <command> [flags] <file.cbor>
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
//	visatrace view session.cbor
//
//	# View only reads
//	visatrace view --direction in session.cbor
//
//	# Export to JSONL
//	visatrace export --format jsonl session.cbor
//
//	# Filter by session and save to new file
//	visatrace filter --session abc12345 -o filtered.cbor session.cbor
//
//	# Show statistics
//	visatrace stats session.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Snyder005/govisa/cmd/visatrace/commands"
)

const usage = `visatrace - Session Trace Analyzer

Usage:
  visatrace <command> [flags] <file.cbor>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "visatrace <command> -help" for more information about a command.
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

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `visatrace view - View trace file in human-readable format

Usage:
  visatrace view [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}

	direction := fs.String("direction", "", "Filter by direction (in, out, local)")
	category := fs.String("category", "", "Filter by category (transfer, attribute, event, state, error)")
	operation := fs.String("operation", "", "Filter by operation name, e.g. viRead")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFileArg(fs)

	var filter commands.ViewFilter
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fatal(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fatal(err)
		}
		filter.Category = &c
	}
	filter.Operation = *operation

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `visatrace export - Export trace file to JSON or CSV format

Usage:
  visatrace export [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format: jsonl, csv")
	output := fs.String("o", "", "Output file path (default stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFileArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `visatrace filter - Filter trace file and write to new file

Usage:
  visatrace filter [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}

	opts := commands.FilterOptions{}
	fs.StringVar(&opts.Output, "o", "filtered.cbor", "Output file path")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Resource, "resource", "", "Filter by resource string")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out, local)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (transfer, attribute, event, state, error)")
	fs.StringVar(&opts.Operation, "operation", "", "Filter by operation name, e.g. viRead")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Events at or after this RFC3339 time")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Events before this RFC3339 time")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFileArg(fs)

	if err := commands.RunFilter(path, opts); err != nil {
		fatal(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `visatrace stats - Show statistics about the trace file

Usage:
  visatrace stats <file.cbor>
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireFileArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatal(err)
	}
}

func requireFileArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
