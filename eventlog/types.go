// Package eventlog exports ledger activity as flat records and reads them
// back. Supports CSV and JSONL, with 256-bit amounts carried as decimal
// strings so no encoding loses precision.
package eventlog

import (
	"fmt"
	"time"

	"github.com/pflow-xyz/go-feetoken/eventsource"
	"github.com/pflow-xyz/go-feetoken/token"
)

// Record kinds.
const (
	KindMint     = "mint"
	KindBurn     = "burn"
	KindTransfer = "transfer"
	KindApproval = "approval"
)

// Record is one row of ledger activity. For approvals, From is the owner,
// To is the spender and Amount is the new allowance value. Fee burns appear
// as ordinary burn records preceding their transfer.
type Record struct {
	Seq       int       `json:"seq"`
	Kind      string    `json:"kind"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// FromEvents flattens an event stream into records, classifying transfers
// touching the zero address as mints and burns.
func FromEvents(events []*eventsource.Event) ([]Record, error) {
	zero := token.ZeroAddress.String()

	records := make([]Record, 0, len(events))
	for _, event := range events {
		rec := Record{Seq: event.Version, Timestamp: event.Timestamp}

		switch event.Type {
		case eventsource.TypeTransfer:
			var data eventsource.TransferData
			if err := event.Decode(&data); err != nil {
				return nil, fmt.Errorf("event %d: %w", event.Version, err)
			}
			rec.From, rec.To, rec.Amount = data.From, data.To, data.Amount
			switch {
			case data.From == zero:
				rec.Kind = KindMint
			case data.To == zero:
				rec.Kind = KindBurn
			default:
				rec.Kind = KindTransfer
			}

		case eventsource.TypeApproval:
			var data eventsource.ApprovalData
			if err := event.Decode(&data); err != nil {
				return nil, fmt.Errorf("event %d: %w", event.Version, err)
			}
			rec.Kind = KindApproval
			rec.From, rec.To, rec.Amount = data.Owner, data.Spender, data.Value

		default:
			return nil, fmt.Errorf("event %d: %w: %q", event.Version, eventsource.ErrUnknownEvent, event.Type)
		}

		records = append(records, rec)
	}
	return records, nil
}
