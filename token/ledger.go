// Package token implements an in-memory fungible-token ledger with a
// proportional burn-on-transfer fee.
//
// Every transfer burns floor(amount * feeRate / 1e18) of the moved amount
// from total supply before crediting the recipient: the sender always pays
// the gross amount, the recipient always receives the net, and the fee is
// destroyed rather than routed to a collector. All amounts are unsigned
// 256-bit integers and every operation is an atomic transition: it either
// fully commits or fails with a named error and no observable state change.
package token

import (
	"sync"

	"github.com/holiman/uint256"
)

// Config describes a ledger at construction time. Name, Symbol, Decimals and
// FeeRate are immutable afterward.
type Config struct {
	Name     string
	Symbol   string
	Decimals uint8

	// FeeRate is the fixed-point transfer fee, scaled by FeeScale. It must
	// be strictly below the scale; nil means no fee.
	FeeRate *uint256.Int

	// Minter authorizes Mint callers. A nil authority denies every mint.
	Minter MintAuthority

	// InitialHolder and InitialSupply, when set, mint the initial supply to
	// the holder during construction, bypassing the authority gate.
	InitialHolder Address
	InitialSupply *uint256.Int
}

// Ledger holds balances, allowances and total supply, and applies the
// transition operations against them. The zero value is not usable; create
// ledgers with New.
//
// A single lock serializes transitions: no operation can observe a
// partially-applied state of another.
type Ledger struct {
	name     string
	symbol   string
	decimals uint8
	feeRate  uint256.Int

	minter MintAuthority

	mu         sync.RWMutex
	balances   map[Address]*uint256.Int
	allowances map[Address]map[Address]*uint256.Int
	supply     uint256.Int
	sinks      []Sink
}

// New creates a ledger from cfg. It fails with ErrFeeRate if the fee rate is
// not below the fixed-point scale, and with ErrInvalidAccount if an initial
// supply is configured without a holder.
func New(cfg Config) (*Ledger, error) {
	l := &Ledger{
		name:       cfg.Name,
		symbol:     cfg.Symbol,
		decimals:   cfg.Decimals,
		minter:     cfg.Minter,
		balances:   make(map[Address]*uint256.Int),
		allowances: make(map[Address]map[Address]*uint256.Int),
	}
	if cfg.FeeRate != nil {
		if cfg.FeeRate.Cmp(feeScale) >= 0 {
			return nil, ErrFeeRate
		}
		l.feeRate.Set(cfg.FeeRate)
	}
	if cfg.InitialSupply != nil && !cfg.InitialSupply.IsZero() {
		if cfg.InitialHolder.IsZero() {
			return nil, ErrInvalidAccount
		}
		if err := l.mint(cfg.InitialHolder, cfg.InitialSupply); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Name returns the token name.
func (l *Ledger) Name() string { return l.name }

// Symbol returns the token symbol.
func (l *Ledger) Symbol() string { return l.symbol }

// Decimals returns the display precision.
func (l *Ledger) Decimals() uint8 { return l.decimals }

// FeeRate returns a copy of the fixed-point transfer fee rate.
func (l *Ledger) FeeRate() *uint256.Int {
	return new(uint256.Int).Set(&l.feeRate)
}

// FeeOn computes the fee and net portions of a gross transfer amount at the
// ledger's fee rate, without touching any state.
func (l *Ledger) FeeOn(amount *uint256.Int) (fee, net *uint256.Int, err error) {
	return feeOn(amount, &l.feeRate)
}

// TotalSupply returns a copy of the current total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(&l.supply)
}

// BalanceOf returns a copy of the account's balance. Accounts that were
// never touched report zero.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.balance(account))
}

// Allowance returns a copy of the amount spender may still move on owner's
// behalf.
func (l *Ledger) Allowance(owner, spender Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.allowance(owner, spender))
}

// Snapshot returns a copy of every account balance with a nonzero entry.
func (l *Ledger) Snapshot() map[Address]*uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := make(map[Address]*uint256.Int, len(l.balances))
	for account, bal := range l.balances {
		if bal.IsZero() {
			continue
		}
		snap[account] = new(uint256.Int).Set(bal)
	}
	return snap
}

// Subscribe registers a sink for transfer and approval notifications.
func (l *Ledger) Subscribe(sink Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, sink)
}

// balance returns the stored balance for account, or a shared zero.
// Callers must hold at least a read lock and must not mutate the result.
func (l *Ledger) balance(account Address) *uint256.Int {
	if bal, ok := l.balances[account]; ok {
		return bal
	}
	return zero
}

// allowance returns the stored allowance, or a shared zero. Callers must
// hold at least a read lock and must not mutate the result.
func (l *Ledger) allowance(owner, spender Address) *uint256.Int {
	if table, ok := l.allowances[owner]; ok {
		if v, ok := table[spender]; ok {
			return v
		}
	}
	return zero
}

func (l *Ledger) setAllowance(owner, spender Address, value *uint256.Int) {
	table, ok := l.allowances[owner]
	if !ok {
		table = make(map[Address]*uint256.Int)
		l.allowances[owner] = table
	}
	table[spender] = value
}

var zero = uint256.NewInt(0)
