package eventsource

import (
	"context"

	"github.com/pflow-xyz/go-feetoken/token"
)

// Recorder is a token.Sink that appends every ledger notification to an
// event stream. The ledger's transition lock already serializes
// notifications, so the recorder tracks the stream head without its own
// locking; one recorder serves one ledger.
//
// Sink callbacks cannot return errors, so the first append failure is kept
// and every later notification is dropped; callers check Err after the
// operations they care about.
type Recorder struct {
	store   Store
	stream  string
	version int
	err     error
}

// NewRecorder creates a recorder appending to stream. The stream's current
// head is read so recording can resume an existing stream.
func NewRecorder(ctx context.Context, store Store, stream string) (*Recorder, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, stream: stream, version: len(events) - 1}, nil
}

// Err returns the first append failure, or nil.
func (r *Recorder) Err() error {
	return r.err
}

// Version returns the stream head version after the last successful append.
func (r *Recorder) Version() int {
	return r.version
}

// OnTransfer implements token.Sink.
func (r *Recorder) OnTransfer(ev token.Transfer) {
	r.append(TypeTransfer, TransferData{
		From:   ev.From.String(),
		To:     ev.To.String(),
		Amount: ev.Amount.Dec(),
	})
}

// OnApproval implements token.Sink.
func (r *Recorder) OnApproval(ev token.Approval) {
	r.append(TypeApproval, ApprovalData{
		Owner:   ev.Owner.String(),
		Spender: ev.Spender.String(),
		Value:   ev.Value.Dec(),
	})
}

func (r *Recorder) append(eventType string, data any) {
	if r.err != nil {
		return
	}
	event, err := NewEvent(r.stream, eventType, data)
	if err != nil {
		r.err = err
		return
	}
	head, err := r.store.Append(context.Background(), r.stream, r.version, []*Event{event})
	if err != nil {
		r.err = err
		return
	}
	r.version = head
}

var _ token.Sink = (*Recorder)(nil)
