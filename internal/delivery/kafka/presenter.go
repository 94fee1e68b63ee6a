package kafka

import "time"

// Events published BY the marketplace

type WalletConnectedEvent struct {
	SessionID   string    `json:"session_id"`
	Address     string    `json:"address"`
	ConnectedAt time.Time `json:"connected_at"`
	Timestamp   time.Time `json:"timestamp"`
}

type WalletDisconnectedEvent struct {
	SessionID      string    `json:"session_id"`
	Address        string    `json:"address,omitempty"`
	DisconnectedAt time.Time `json:"disconnected_at"`
	Timestamp      time.Time `json:"timestamp"`
}

type TicketMintedEvent struct {
	TicketID      string    `json:"ticket_id"`
	TransactionID string    `json:"transaction_id"`
	SessionID     string    `json:"session_id"`
	EventID       string    `json:"event_id"`
	TxHash        string    `json:"tx_hash"`
	Price         string    `json:"price"`
	Currency      string    `json:"currency"`
	MintedAt      time.Time `json:"minted_at"`
	Timestamp     time.Time `json:"timestamp"`
}

type TicketBurntEvent struct {
	TransactionID string    `json:"transaction_id"`
	SessionID     string    `json:"session_id"`
	EventID       string    `json:"event_id"`
	BurntAt       time.Time `json:"burnt_at"`
	Timestamp     time.Time `json:"timestamp"`
}

type PurchaseFailedEvent struct {
	TransactionID string    `json:"transaction_id"`
	SessionID     string    `json:"session_id"`
	EventID       string    `json:"event_id"`
	Reason        string    `json:"reason"` // sold out, cancelled
	FailedAt      time.Time `json:"failed_at"`
	Timestamp     time.Time `json:"timestamp"`
}

// Events consumed BY the marketplace (from the venue gate scanners)

type TicketCheckedInEvent struct {
	TicketID    string    `json:"ticket_id"`
	EventID     string    `json:"event_id"`
	Gate        string    `json:"gate,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at"`
	Timestamp   time.Time `json:"timestamp"`
}
