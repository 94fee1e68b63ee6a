package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusValid TicketStatus = "valid"
	TicketStatusUsed  TicketStatus = "used"
	TicketStatusBurnt TicketStatus = "burnt"
)

type PurchasedTicket struct {
	TicketID      string          `json:"ticket_id"`
	SessionID     string          `json:"session_id"`
	EventID       string          `json:"event_id"`
	EventTitle    string          `json:"event_title"`
	EventDate     string          `json:"event_date"`
	EventLocation string          `json:"event_location"`
	SeatSection   string          `json:"seat_section,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Status        TicketStatus    `json:"status"`
	TxHash        string          `json:"tx_hash,omitempty"`
	MintedAt      time.Time       `json:"minted_at"`
	UsedAt        *time.Time      `json:"used_at,omitempty"`
}

// NewPurchasedTicket copies the display fields of ev onto a fresh valid ticket.
func NewPurchasedTicket(ticketID, sessionID, txHash string, ev *Event, mintedAt time.Time) *PurchasedTicket {
	return &PurchasedTicket{
		TicketID:      ticketID,
		SessionID:     sessionID,
		EventID:       ev.ID,
		EventTitle:    ev.Title,
		EventDate:     ev.Date,
		EventLocation: ev.Location,
		Price:         ev.Price,
		Currency:      ev.Currency,
		Status:        TicketStatusValid,
		TxHash:        txHash,
		MintedAt:      mintedAt,
	}
}

func (t *PurchasedTicket) IsValid() bool {
	return t.Status == TicketStatusValid
}
