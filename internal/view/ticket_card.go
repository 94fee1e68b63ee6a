package view

import (
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/util"
)

type TicketStatusConfig struct {
	Badge      string
	BadgeClass string
	CardClass  string
}

var ticketStatusConfigs = map[models.TicketStatus]TicketStatusConfig{
	models.TicketStatusValid: {
		Badge:      "Valid",
		BadgeClass: "badge-success",
		CardClass:  "card-success",
	},
	models.TicketStatusUsed: {
		Badge:      "Used",
		BadgeClass: "badge-muted",
		CardClass:  "card-muted card-faded",
	},
	models.TicketStatusBurnt: {
		Badge:      "Burnt (Fraud)",
		BadgeClass: "badge-fraud",
		CardClass:  "card-fraud card-faded",
	},
}

var unknownTicketStatus = TicketStatusConfig{
	Badge:      "Unknown",
	BadgeClass: "badge-muted",
	CardClass:  "card-muted",
}

type TicketCard struct {
	TicketID    string
	EventTitle  string
	EventDate   string
	Location    string
	SeatSection string
	Price       string
	Currency    string
	MintedAt    string
	Status      TicketStatusConfig
	ShowQR      bool
	TxHash      string
	ExplorerURL string
}

func NewTicketCard(t models.PurchasedTicket, explorerBase string) TicketCard {
	cfg, ok := ticketStatusConfigs[t.Status]
	if !ok {
		cfg = unknownTicketStatus
	}

	c := TicketCard{
		TicketID:    t.TicketID,
		EventTitle:  t.EventTitle,
		EventDate:   t.EventDate,
		Location:    t.EventLocation,
		SeatSection: t.SeatSection,
		Price:       t.Price.String(),
		Currency:    t.Currency,
		MintedAt:    util.FormatDateTime(t.MintedAt),
		Status:      cfg,
		ShowQR:      t.Status == models.TicketStatusValid,
		TxHash:      t.TxHash,
	}
	if c.Currency == "" {
		c.Currency = "STX"
	}
	if t.TxHash != "" {
		c.ExplorerURL = explorerBase + t.TxHash
	}

	return c
}
