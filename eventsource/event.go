// Package eventsource persists ledger activity as append-only event streams
// and rebuilds ledgers by replaying them.
//
// A Recorder subscribes to a token.Ledger and appends one event per
// notification; Replay folds a stream back into a fresh ledger with the same
// balances, allowances and supply. Streams are ordered by an integer version
// with optimistic concurrency on append.
package eventsource

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVersionConflict = errors.New("eventsource: stream version conflict")
	ErrUnknownEvent    = errors.New("eventsource: unknown event type")
)

// Event types recorded for a ledger stream.
const (
	TypeTransfer = "transfer"
	TypeApproval = "approval"
)

// Event is a single immutable fact in a stream. Version is assigned by the
// store on append.
type Event struct {
	ID        string          `json:"id"`
	Stream    string          `json:"stream"`
	Type      string          `json:"type"`
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and a JSON-encoded payload.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode event data: %w", err)
		}
		raw = b
	}
	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// TransferData is the payload of a TypeTransfer event. Amounts are decimal
// strings so 256-bit values survive JSON intact. Mints carry the zero
// address in From; burns, including fee burns, carry it in To.
type TransferData struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// ApprovalData is the payload of a TypeApproval event.
type ApprovalData struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Value   string `json:"value"`
}
