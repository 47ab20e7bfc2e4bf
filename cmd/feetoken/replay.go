package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/eventsource"
	"github.com/pflow-xyz/go-feetoken/token"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	db := fs.String("db", "", "SQLite database holding the event stream (required)")
	stream := fs.String("stream", "demo", "Event stream name")
	name := fs.String("name", "Fee Token", "Token name")
	symbol := fs.String("symbol", "FEE", "Token symbol")
	decimals := fs.Uint("decimals", 18, "Token decimals")
	feeRate := fs.String("fee-rate", "1000000000000000", "Fee rate at scale 1e18")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: feetoken replay -db <file> [options]

Rebuild a ledger from a recorded event stream and print its balances,
supply, and state digest. Recorded amounts are net of fees, so replay
reproduces the recorded state exactly rather than charging fees again.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  feetoken replay -db session.db -stream demo
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *db == "" {
		fs.Usage()
		return fmt.Errorf("-db is required")
	}

	rate := new(uint256.Int)
	if err := rate.SetFromDecimal(*feeRate); err != nil {
		return fmt.Errorf("parse fee-rate: %w", err)
	}

	store, err := eventsource.NewSQLiteStore(*db)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ledger, err := eventsource.Replay(context.Background(), store, *stream, token.Config{
		Name:     *name,
		Symbol:   *symbol,
		Decimals: uint8(*decimals),
		FeeRate:  rate,
	})
	if err != nil {
		return fmt.Errorf("replay stream %q: %w", *stream, err)
	}

	fmt.Printf("Replayed stream %q from %s\n\n", *stream, *db)
	printLedger(ledger)
	return nil
}
