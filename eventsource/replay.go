package eventsource

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/token"
)

// Replay rebuilds a ledger from the events of a stream. cfg supplies the
// metadata and fee rate of the rebuilt ledger; its Minter, InitialHolder and
// InitialSupply fields are overridden, because the stream already contains
// every mint as a recorded fact.
//
// Recorded transfers carry net amounts with their fee burns as separate
// events, so replaying a move through Ledger.Transfer would charge the fee a
// second time. Moves therefore replay as a burn/mint pair of the net amount:
// supply and balances land exactly where the original transition put them,
// and the recorded fee burn replays as a plain burn.
//
// The returned ledger admits any mint caller; treat it as a read model, not
// as a live ledger with the original authority policy.
func Replay(ctx context.Context, store Store, stream string, cfg token.Config) (*token.Ledger, error) {
	cfg.Minter = token.AllowAll()
	cfg.InitialHolder = token.ZeroAddress
	cfg.InitialSupply = nil

	ledger, err := token.New(cfg)
	if err != nil {
		return nil, err
	}

	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		if err := applyEvent(ledger, event); err != nil {
			return nil, fmt.Errorf("replay %s event %d: %w", stream, event.Version, err)
		}
	}
	return ledger, nil
}

func applyEvent(ledger *token.Ledger, event *Event) error {
	switch event.Type {
	case TypeTransfer:
		var data TransferData
		if err := event.Decode(&data); err != nil {
			return err
		}
		from, to, amount, err := parseTransfer(data)
		if err != nil {
			return err
		}
		switch {
		case from.IsZero():
			return ledger.Mint(to, to, amount)
		case to.IsZero():
			return ledger.Burn(from, amount)
		default:
			// Net move: burn from the sender, mint to the recipient. The
			// pair cancels in total supply and charges no second fee.
			if err := ledger.Burn(from, amount); err != nil {
				return err
			}
			return ledger.Mint(to, to, amount)
		}

	case TypeApproval:
		var data ApprovalData
		if err := event.Decode(&data); err != nil {
			return err
		}
		owner, err := token.ParseAddress(data.Owner)
		if err != nil {
			return err
		}
		spender, err := token.ParseAddress(data.Spender)
		if err != nil {
			return err
		}
		value := new(uint256.Int)
		if err := value.SetFromDecimal(data.Value); err != nil {
			return fmt.Errorf("parse approval value %q: %w", data.Value, err)
		}
		return ledger.Approve(owner, spender, value)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
}

func parseTransfer(data TransferData) (from, to token.Address, amount *uint256.Int, err error) {
	from, err = token.ParseAddress(data.From)
	if err != nil {
		return
	}
	to, err = token.ParseAddress(data.To)
	if err != nil {
		return
	}
	amount = new(uint256.Int)
	if err = amount.SetFromDecimal(data.Amount); err != nil {
		err = fmt.Errorf("parse transfer amount %q: %w", data.Amount, err)
	}
	return
}
