// Package workload drives randomized operation sequences against a ledger
// and checks its invariants after every step. This is the repo's standing
// fuzz harness: a violation found here is a bug in the transition engine,
// never in the workload.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/token"
)

// Operation kinds reported in Stats.
const (
	OpTransfer     = "transfer"
	OpMint         = "mint"
	OpBurn         = "burn"
	OpApprove      = "approve"
	OpTransferFrom = "transferFrom"
	OpIncrease     = "increaseAllowance"
	OpDecrease     = "decreaseAllowance"
)

// Stats counts operation outcomes by kind. Rejected operations failed with
// one of the ledger's named errors; that is expected behavior under random
// input, not a defect.
type Stats struct {
	Accepted map[string]int
	Rejected map[string]int
}

func newStats() Stats {
	return Stats{Accepted: make(map[string]int), Rejected: make(map[string]int)}
}

// Total returns the number of generated operations.
func (s Stats) Total() int {
	n := 0
	for _, c := range s.Accepted {
		n += c
	}
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Driver generates a deterministic operation sequence from a seed.
type Driver struct {
	rng      *rand.Rand
	accounts []token.Address
	minter   token.Address
}

// New creates a driver over n accounts. The same seed and account count
// always generate the same sequence.
func New(seed int64, n int) *Driver {
	accounts := make([]token.Address, n)
	for i := range accounts {
		accounts[i] = token.BytesToAddress([]byte{0x10, byte(i + 1)})
	}
	return &Driver{
		rng:      rand.New(rand.NewSource(seed)),
		accounts: accounts,
		minter:   token.BytesToAddress([]byte{0x01}),
	}
}

// Run builds a ledger from cfg (its Minter is replaced so the driver can
// exercise both authorized and unauthorized mints), applies steps random
// operations, and checks invariants after every one. The driver funds the
// first account before starting so transfers have something to move.
func (d *Driver) Run(cfg token.Config, steps int) (*token.Ledger, Stats, error) {
	cfg.Minter = token.SingleMinter(d.minter)
	cfg.InitialHolder = d.accounts[0]
	cfg.InitialSupply = uint256.NewInt(1_000_000_000)

	ledger, err := token.New(cfg)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := newStats()
	for i := 0; i < steps; i++ {
		kind, opErr := d.step(ledger)
		switch {
		case opErr == nil:
			stats.Accepted[kind]++
		case rejected(opErr):
			stats.Rejected[kind]++
		default:
			return nil, stats, fmt.Errorf("step %d (%s): unexpected error: %w", i, kind, opErr)
		}

		if violations := ledger.CheckInvariants(); len(violations) != 0 {
			return nil, stats, fmt.Errorf("step %d (%s): invariant violated: %s", i, kind, violations[0])
		}
	}
	return ledger, stats, nil
}

// step applies one random operation and returns its kind and outcome.
func (d *Driver) step(l *token.Ledger) (string, error) {
	a := d.account()
	b := d.account()
	amount := d.amount(l.BalanceOf(a))

	switch roll := d.rng.Intn(100); {
	case roll < 40:
		return OpTransfer, l.Transfer(a, b, amount)
	case roll < 50:
		// Half the mints come from an unauthorized caller on purpose.
		caller := d.minter
		if d.rng.Intn(2) == 0 {
			caller = a
		}
		return OpMint, l.Mint(caller, b, d.amount(uint256.NewInt(1_000_000)))
	case roll < 60:
		return OpBurn, l.Burn(a, amount)
	case roll < 75:
		return OpApprove, l.Approve(a, b, d.amount(uint256.NewInt(1_000_000)))
	case roll < 90:
		return OpTransferFrom, l.TransferFrom(b, a, d.account(), amount)
	case roll < 95:
		return OpIncrease, l.IncreaseAllowance(a, b, d.amount(uint256.NewInt(1_000_000)))
	default:
		return OpDecrease, l.DecreaseAllowance(a, b, d.amount(l.Allowance(a, b)))
	}
}

func (d *Driver) account() token.Address {
	return d.accounts[d.rng.Intn(len(d.accounts))]
}

// amount picks a value around the given bound: mostly affordable, with a
// tail above it so rejection paths get exercised too.
func (d *Driver) amount(bound *uint256.Int) *uint256.Int {
	max := uint64(1_000_000)
	if bound.IsUint64() && bound.Uint64() > 0 {
		max = bound.Uint64()
	}
	n := d.rng.Uint64() % (max + max/4 + 1)
	return uint256.NewInt(n)
}

// rejected reports whether err is one of the ledger's named refusals.
func rejected(err error) bool {
	return errors.Is(err, token.ErrInsufficientBalance) ||
		errors.Is(err, token.ErrInsufficientAllowance) ||
		errors.Is(err, token.ErrUnauthorized) ||
		errors.Is(err, token.ErrInvalidAccount) ||
		errors.Is(err, token.ErrOverflow)
}

// RunMany runs one driver per seed in parallel, each against its own ledger
// built from cfg. It returns per-seed stats, or the first failure.
func RunMany(cfg token.Config, seeds []int64, accounts, steps int) ([]Stats, error) {
	results := make([]Stats, len(seeds))
	errs := make([]error, len(seeds))
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()
			_, stats, err := New(seed, accounts).Run(cfg, steps)
			results[idx] = stats
			errs[idx] = err
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
