package models

import "time"

type WalletSession struct {
	Connected   bool       `json:"connected"`
	Connecting  bool       `json:"connecting"`
	Address     string     `json:"address,omitempty"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
}

// Session holds everything a single viewer of the marketplace owns. Events
// are shared and live outside of it.
type Session struct {
	ID          string        `json:"id"`
	Wallet      WalletSession `json:"wallet"`
	Transaction *Transaction  `json:"transaction,omitempty"`
	UserAgent   string        `json:"user_agent,omitempty"`
	IPAddress   string        `json:"ip_address,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) HasPendingTransaction() bool {
	return s.Transaction != nil && !s.Transaction.IsResolved()
}

func (w *WalletSession) Connect(address string, at time.Time) {
	w.Connected = true
	w.Connecting = false
	w.Address = address
	w.ConnectedAt = &at
}

func (w *WalletSession) Disconnect() {
	w.Connected = false
	w.Connecting = false
	w.Address = ""
	w.ConnectedAt = nil
}
