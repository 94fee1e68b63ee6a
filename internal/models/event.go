package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNoTicketsLeft = errors.New("no tickets left")

// Outcome is the resolution of one simulated purchase.
type Outcome string

const (
	OutcomeSold  Outcome = "sold"
	OutcomeBurnt Outcome = "burnt"
)

type Event struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Date             string          `json:"date"`
	Location         string          `json:"location"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	AvailableTickets int             `json:"available_tickets"`
	SoldTickets      int             `json:"sold_tickets"`
	BurntTickets     int             `json:"burnt_tickets"`
	TotalTickets     int             `json:"total_tickets"`
	Category         string          `json:"category"`
	Image            string          `json:"image,omitempty"`
}

func (e *Event) IsAvailable() bool {
	return e.AvailableTickets > 0
}

func (e *Event) IsSoldOut() bool {
	return e.AvailableTickets == 0
}

// Consistent reports whether the inventory split adds up to the total.
// Seed data is not required to satisfy it.
func (e *Event) Consistent() bool {
	return e.AvailableTickets+e.SoldTickets+e.BurntTickets == e.TotalTickets
}

// Settle moves one ticket out of the available pool into the sold or burnt
// pool. The total never changes.
func (e *Event) Settle(o Outcome) error {
	if e.AvailableTickets <= 0 {
		return ErrNoTicketsLeft
	}

	switch o {
	case OutcomeSold:
		e.SoldTickets++
	case OutcomeBurnt:
		e.BurntTickets++
	default:
		return errors.New("unknown outcome: " + string(o))
	}

	e.AvailableTickets--
	return nil
}

// SeedEvents returns the launch inventory shown on the landing page.
func SeedEvents(currency string) []Event {
	return []Event{
		{
			ID:               "1",
			Title:            "Neon Dreams Festival",
			Date:             "March 15, 2024 • 8:00 PM",
			Location:         "Digital Arena, Metaverse City",
			Price:            decimal.NewFromInt(50),
			Currency:         currency,
			AvailableTickets: 120,
			SoldTickets:      365,
			BurntTickets:     15,
			TotalTickets:     500,
			Category:         "Music Festival",
		},
		{
			ID:               "2",
			Title:            "Blockchain Summit 2024",
			Date:             "April 2, 2024 • 10:00 AM",
			Location:         "Convention Center, Tech District",
			Price:            decimal.NewFromInt(75),
			Currency:         currency,
			AvailableTickets: 0,
			SoldTickets:      185,
			BurntTickets:     15,
			TotalTickets:     200,
			Category:         "Conference",
		},
		{
			ID:               "3",
			Title:            "Cyber Punk Concert",
			Date:             "May 20, 2024 • 9:00 PM",
			Location:         "Holographic Hall, Neo Tokyo",
			Price:            decimal.NewFromInt(35),
			Currency:         currency,
			AvailableTickets: 89,
			SoldTickets:      205,
			BurntTickets:     6,
			TotalTickets:     300,
			Category:         "Concert",
		},
	}
}
