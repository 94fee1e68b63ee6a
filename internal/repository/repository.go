package repository

import (
	"context"
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
)

type EventRepository interface {
	// Seed replaces the whole catalogue, inventory counters included, with events.
	Seed(ctx context.Context, events []models.Event) error
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, eID string) (*models.Event, error)
	// Settle atomically applies one resolved purchase to the event inventory.
	Settle(ctx context.Context, eID string, o models.Outcome) (*models.Event, error)
}

type SessionRepository interface {
	Create(ctx context.Context, ss *models.Session) error
	Get(ctx context.Context, ssID string) (*models.Session, error)
	Update(ctx context.Context, ss *models.Session) error
	Delete(ctx context.Context, ssID string) error
	// PurgeExpired drops expired sessions the store does not evict by itself
	// and returns their ids.
	PurgeExpired(ctx context.Context) ([]string, error)
}

type TicketRepository interface {
	Add(ctx context.Context, t *models.PurchasedTicket) error
	Get(ctx context.Context, tID string) (*models.PurchasedTicket, error)
	ListBySession(ctx context.Context, ssID string) ([]models.PurchasedTicket, error)
	// MarkUsed moves a valid ticket to used at the given time in one atomic
	// step. Tickets in any other status fail with ErrTicketNotValid.
	MarkUsed(ctx context.Context, tID string, at time.Time) (*models.PurchasedTicket, error)
	DeleteBySession(ctx context.Context, ssID string) error
}
