package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pflow-xyz/go-feetoken/eventlog"
	"github.com/pflow-xyz/go-feetoken/eventsource"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	db := fs.String("db", "", "SQLite database holding the event stream (required)")
	stream := fs.String("stream", "demo", "Event stream name")
	format := fs.String("format", "csv", "Output format: csv or jsonl")
	output := fs.String("o", "", "Output file (default stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: feetoken export -db <file> [options]

Export a recorded event stream as flat activity records. Transfers to
and from the zero address are classified as mints and burns.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # CSV to stdout
  feetoken export -db session.db -stream demo

  # JSONL to a file
  feetoken export -db session.db -format jsonl -o session.jsonl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *db == "" {
		fs.Usage()
		return fmt.Errorf("-db is required")
	}

	store, err := eventsource.NewSQLiteStore(*db)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	events, err := store.Read(context.Background(), *stream, 0)
	if err != nil {
		return fmt.Errorf("read stream %q: %w", *stream, err)
	}
	records, err := eventlog.FromEvents(events)
	if err != nil {
		return fmt.Errorf("convert events: %w", err)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "csv":
		err = eventlog.WriteCSV(w, records)
	case "jsonl":
		err = eventlog.WriteJSONL(w, records)
	default:
		return fmt.Errorf("unknown format %q (want csv or jsonl)", *format)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", *format, err)
	}

	if *output != "" {
		fmt.Printf("Exported %d records to %s\n", len(records), *output)
	}
	return nil
}
