package workload_test

import (
	"reflect"
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/token"
	"github.com/pflow-xyz/go-feetoken/workload"
)

func config() token.Config {
	return token.Config{
		Name:    "Fee Token",
		Symbol:  "FEE",
		FeeRate: uint256.NewInt(1_000_000_000_000_000),
	}
}

func TestRunHoldsInvariants(t *testing.T) {
	ledger, stats, err := workload.New(1, 5).Run(config(), 2000)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total() != 2000 {
		t.Errorf("stats account for %d operations, want 2000", stats.Total())
	}
	if violations := ledger.CheckInvariants(); len(violations) != 0 {
		t.Errorf("final state violates invariants: %v", violations)
	}
}

func TestRunExercisesAcceptAndReject(t *testing.T) {
	_, stats, err := workload.New(7, 4).Run(config(), 2000)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.Accepted) == 0 {
		t.Error("no operation was accepted")
	}
	if len(stats.Rejected) == 0 {
		t.Error("no operation was rejected; the workload is not reaching failure paths")
	}
	if stats.Accepted[workload.OpTransfer] == 0 {
		t.Error("no transfer was accepted")
	}
}

func TestRunDeterministic(t *testing.T) {
	_, first, err := workload.New(42, 5).Run(config(), 500)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := workload.New(42, 5).Run(config(), 500)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different stats:\n%v\n%v", first, second)
	}
}

func TestRunMany(t *testing.T) {
	stats, err := workload.RunMany(config(), []int64{1, 2, 3, 4}, 5, 500)
	if err != nil {
		t.Fatalf("RunMany: %v", err)
	}
	if len(stats) != 4 {
		t.Fatalf("got %d results, want 4", len(stats))
	}
	for i, s := range stats {
		if s.Total() != 500 {
			t.Errorf("seed %d accounts for %d operations, want 500", i, s.Total())
		}
	}
}
