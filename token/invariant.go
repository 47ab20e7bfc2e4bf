package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Violation describes a failed invariant probe.
type Violation struct {
	Invariant string
	Detail    string
}

func (v Violation) String() string {
	return v.Invariant + ": " + v.Detail
}

// CheckInvariants probes the ledger's structural invariants and returns one
// violation per failed probe, nil when all hold:
//
//   - conservation: the account balances sum to total supply
//   - zero_address: the null account holds nothing
//
// Non-negativity needs no probe, since amounts are unsigned and every
// subtraction is guarded. The two stated probes would surface any bug that
// slipped past those guards.
func (l *Ledger) CheckInvariants() []Violation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var violations []Violation

	sum := new(uint256.Int)
	wrapped := false
	for _, bal := range l.balances {
		next, overflow := new(uint256.Int).AddOverflow(sum, bal)
		if overflow {
			wrapped = true
			break
		}
		sum = next
	}
	switch {
	case wrapped:
		violations = append(violations, Violation{
			Invariant: "conservation",
			Detail:    "balance sum overflows 256 bits",
		})
	case sum.Cmp(&l.supply) != 0:
		violations = append(violations, Violation{
			Invariant: "conservation",
			Detail:    fmt.Sprintf("balances sum to %s, total supply is %s", sum.Dec(), l.supply.Dec()),
		})
	}

	if bal, ok := l.balances[ZeroAddress]; ok && !bal.IsZero() {
		violations = append(violations, Violation{
			Invariant: "zero_address",
			Detail:    fmt.Sprintf("null account holds %s", bal.Dec()),
		})
	}

	return violations
}
