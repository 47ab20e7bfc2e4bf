// Command feetoken demonstrates the fee-on-transfer ledger: run a scripted
// session, replay a recorded event stream, or export one to CSV/JSONL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "replay":
		if err := replay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `feetoken - fee-on-transfer token ledger

Usage: feetoken <command> [options]

Commands:
  demo      Run a scripted ledger session, optionally recording it
  replay    Rebuild a ledger from a recorded event stream
  export    Export an event stream to CSV or JSONL
  help      Show this help

Run 'feetoken <command> -h' for command options.
`)
}
