package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/commit"
	"github.com/pflow-xyz/go-feetoken/eventsource"
	"github.com/pflow-xyz/go-feetoken/token"
)

var (
	demoMinter = token.BytesToAddress([]byte{0x01})
	demoAlice  = token.BytesToAddress([]byte{0x0a})
	demoBob    = token.BytesToAddress([]byte{0x0b})
	demoCarol  = token.BytesToAddress([]byte{0x0c})
)

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	name := fs.String("name", "Fee Token", "Token name")
	symbol := fs.String("symbol", "FEE", "Token symbol")
	decimals := fs.Uint("decimals", 18, "Token decimals")
	feeRate := fs.String("fee-rate", "1000000000000000", "Fee rate at scale 1e18 (default 0.1%)")
	supply := fs.String("supply", "1000000", "Initial supply minted to the first account")
	db := fs.String("db", "", "SQLite database to record the session to (optional)")
	stream := fs.String("stream", "demo", "Event stream name used with -db")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: feetoken demo [options]

Run a scripted session against a fresh ledger: mint an initial supply,
move tokens between three accounts, and print the resulting balances,
supply, and state digest. With -db the session is recorded as an event
stream that 'feetoken replay' can rebuild.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Run with defaults
  feetoken demo

  # Record the session for later replay
  feetoken demo -db session.db -stream demo
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	rate := new(uint256.Int)
	if err := rate.SetFromDecimal(*feeRate); err != nil {
		return fmt.Errorf("parse fee-rate: %w", err)
	}
	initial := new(uint256.Int)
	if err := initial.SetFromDecimal(*supply); err != nil {
		return fmt.Errorf("parse supply: %w", err)
	}

	ledger, err := token.New(token.Config{
		Name:     *name,
		Symbol:   *symbol,
		Decimals: uint8(*decimals),
		FeeRate:  rate,
		Minter:   token.SingleMinter(demoMinter),
	})
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}

	ctx := context.Background()
	var recorder *eventsource.Recorder
	if *db != "" {
		store, err := eventsource.NewSQLiteStore(*db)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()
		recorder, err = eventsource.NewRecorder(ctx, store, *stream)
		if err != nil {
			return fmt.Errorf("open recorder: %w", err)
		}
		ledger.Subscribe(recorder)
	}

	fmt.Printf("Ledger: %s (%s), %d decimals, fee rate %s/1e18\n",
		ledger.Name(), ledger.Symbol(), ledger.Decimals(), ledger.FeeRate().Dec())
	fmt.Println()

	// Scripted session. The mint runs after the recorder is subscribed so
	// replayed streams start from the same empty state. Each step either
	// succeeds or the run aborts.
	tenth := new(uint256.Int).Div(initial, uint256.NewInt(10))
	steps := []struct {
		desc string
		run  func() error
	}{
		{fmt.Sprintf("mint %s to alice", initial.Dec()), func() error {
			return ledger.Mint(demoMinter, demoAlice, initial)
		}},
		{fmt.Sprintf("transfer %s alice -> bob", tenth.Dec()), func() error {
			return ledger.Transfer(demoAlice, demoBob, tenth)
		}},
		{fmt.Sprintf("transfer %s alice -> carol", tenth.Dec()), func() error {
			return ledger.Transfer(demoAlice, demoCarol, tenth)
		}},
		{fmt.Sprintf("approve bob -> carol for %s", tenth.Dec()), func() error {
			return ledger.Approve(demoBob, demoCarol, tenth)
		}},
		{"transferFrom carol moves half of bob's allowance", func() error {
			half := new(uint256.Int).Div(tenth, uint256.NewInt(2))
			return ledger.TransferFrom(demoCarol, demoBob, demoCarol, half)
		}},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.desc, err)
		}
		fmt.Printf("  ok: %s\n", s.desc)
	}
	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return fmt.Errorf("record session: %w", err)
		}
	}

	fmt.Println()
	printLedger(ledger)

	if violations := ledger.CheckInvariants(); len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "invariant violated: %s\n", v)
		}
		return fmt.Errorf("%d invariant violation(s)", len(violations))
	}
	if recorder != nil {
		fmt.Printf("\nRecorded %d events to stream %q in %s\n", recorder.Version()+1, *stream, *db)
	}
	return nil
}

func printLedger(l *token.Ledger) {
	balances := l.Snapshot()
	addrs := make([]token.Address, 0, len(balances))
	for a := range balances {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].String() < addrs[j].String()
	})

	fmt.Println("Balances:")
	for _, a := range addrs {
		fmt.Printf("  %s  %s\n", a, balances[a].Dec())
	}
	fmt.Printf("Total supply: %s\n", l.TotalSupply().Dec())
	fmt.Printf("State digest: %x\n", commit.Digest(l))
}
