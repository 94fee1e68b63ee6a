package view

import "github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"

type IndexPage struct {
	Content     *Content
	Wallet      WalletPanel
	Transaction *TransactionPanel
	Events      []EventCard
	Tickets     []TicketCard
	// AutoRefresh is set while a simulated step is still running, so the
	// page polls until it resolves.
	AutoRefresh bool
}

func NewIndexPage(content *Content, ss *models.Session, events []models.Event, tickets []models.PurchasedTicket, explorerBase string) IndexPage {
	p := IndexPage{
		Content:     content,
		Wallet:      NewWalletPanel(ss.Wallet),
		Transaction: NewTransactionPanel(ss.Transaction, explorerBase),
		Events:      make([]EventCard, 0, len(events)),
		Tickets:     make([]TicketCard, 0, len(tickets)),
		AutoRefresh: ss.Wallet.Connecting || ss.HasPendingTransaction(),
	}

	for _, ev := range events {
		p.Events = append(p.Events, NewEventCard(ev, ss.Wallet.Connected))
	}
	for _, t := range tickets {
		p.Tickets = append(p.Tickets, NewTicketCard(t, explorerBase))
	}

	return p
}
