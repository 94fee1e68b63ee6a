package models

import "time"

type TransactionState string

const (
	TransactionPending TransactionState = "pending"
	TransactionSuccess TransactionState = "success"
	TransactionFraud   TransactionState = "fraud"
	TransactionFailed  TransactionState = "failed"
)

const (
	FailureReasonSoldOut    = "sold out"
	FailureReasonCancelled  = "cancelled"
	FailureReasonSettlement = "settlement failed"
)

// Transaction is the status of the latest simulated purchase of a session.
// Payload fields are only set for the state that owns them: TicketID and
// TxHash on success, Reason on failure.
type Transaction struct {
	ID         string           `json:"id"`
	State      TransactionState `json:"state"`
	EventID    string           `json:"event_id"`
	EventTitle string           `json:"event_title"`
	TicketID   string           `json:"ticket_id,omitempty"`
	TxHash     string           `json:"tx_hash,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
}

func NewPendingTransaction(id string, ev *Event, now time.Time) *Transaction {
	return &Transaction{
		ID:         id,
		State:      TransactionPending,
		EventID:    ev.ID,
		EventTitle: ev.Title,
		StartedAt:  now,
	}
}

func (t *Transaction) IsResolved() bool {
	return t.State != TransactionPending
}

func (t *Transaction) Succeed(ticketID, txHash string, at time.Time) *Transaction {
	out := t.resolve(TransactionSuccess, at)
	out.TicketID = ticketID
	out.TxHash = txHash
	return out
}

func (t *Transaction) Flag(at time.Time) *Transaction {
	return t.resolve(TransactionFraud, at)
}

func (t *Transaction) Fail(reason string, at time.Time) *Transaction {
	out := t.resolve(TransactionFailed, at)
	out.Reason = reason
	return out
}

func (t *Transaction) resolve(state TransactionState, at time.Time) *Transaction {
	return &Transaction{
		ID:         t.ID,
		State:      state,
		EventID:    t.EventID,
		EventTitle: t.EventTitle,
		StartedAt:  t.StartedAt,
		ResolvedAt: &at,
	}
}
