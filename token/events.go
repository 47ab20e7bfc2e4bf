package token

import "github.com/holiman/uint256"

// Transfer describes value moving between accounts. Mints carry
// From == ZeroAddress; burns, including fee burns, carry To == ZeroAddress.
type Transfer struct {
	From   Address
	To     Address
	Amount *uint256.Int
}

// Approval describes an allowance being set to a new value.
type Approval struct {
	Owner   Address
	Spender Address
	Value   *uint256.Int
}

// Sink receives ledger notifications. Sinks run synchronously inside the
// transition that produced the notification, so delivery order matches
// commit order exactly. A sink must not call back into the ledger.
type Sink interface {
	OnTransfer(Transfer)
	OnApproval(Approval)
}

// SinkFuncs adapts plain functions to the Sink interface. Nil fields drop
// their notifications.
type SinkFuncs struct {
	Transfer func(Transfer)
	Approval func(Approval)
}

// OnTransfer calls the Transfer func if set.
func (s SinkFuncs) OnTransfer(ev Transfer) {
	if s.Transfer != nil {
		s.Transfer(ev)
	}
}

// OnApproval calls the Approval func if set.
func (s SinkFuncs) OnApproval(ev Approval) {
	if s.Approval != nil {
		s.Approval(ev)
	}
}

func (l *Ledger) notifyTransfer(ev Transfer) {
	for _, s := range l.sinks {
		s.OnTransfer(ev)
	}
}

func (l *Ledger) notifyApproval(ev Approval) {
	for _, s := range l.sinks {
		s.OnApproval(ev)
	}
}
