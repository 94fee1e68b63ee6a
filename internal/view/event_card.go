package view

import (
	"fmt"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
)

type ButtonAction string

const (
	ActionConnect    ButtonAction = "connect"
	ActionBuy        ButtonAction = "buy"
	ActionDisconnect ButtonAction = "disconnect"
	ActionNone       ButtonAction = "none"
)

type Badge struct {
	Label string
	Class string
}

type Button struct {
	Label    string
	Variant  string
	Action   ButtonAction
	Disabled bool
}

type EventCard struct {
	ID        string
	Title     string
	Date      string
	Location  string
	Category  string
	Image     string
	Status    Badge
	Inventory string
	Price     string
	Currency  string
	Button    Button
}

// NewEventCard maps an event to its card. Without a wallet the button always
// offers to connect one, whatever the availability.
func NewEventCard(ev models.Event, walletConnected bool) EventCard {
	c := EventCard{
		ID:        ev.ID,
		Title:     ev.Title,
		Date:      ev.Date,
		Location:  ev.Location,
		Category:  ev.Category,
		Image:     ev.Image,
		Inventory: fmt.Sprintf("%d / %d tickets available", ev.AvailableTickets, ev.TotalTickets),
		Price:     ev.Price.String(),
		Currency:  ev.Currency,
	}
	if c.Currency == "" {
		c.Currency = "STX"
	}

	if ev.IsSoldOut() {
		c.Status = Badge{Label: "Sold Out", Class: "badge-destructive"}
	} else {
		c.Status = Badge{Label: "Available", Class: "badge-success"}
	}

	switch {
	case !walletConnected:
		c.Button = Button{Label: "Connect Wallet", Variant: "wallet", Action: ActionConnect}
	case ev.IsSoldOut():
		c.Button = Button{Label: "Sold Out", Variant: "nft", Action: ActionNone, Disabled: true}
	default:
		c.Button = Button{Label: "Buy NFT Ticket", Variant: "nft", Action: ActionBuy}
	}

	return c
}
