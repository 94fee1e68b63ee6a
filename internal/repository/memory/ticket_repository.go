package memory

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
)

type ticketRepository struct {
	mu        sync.RWMutex
	tickets   map[string]*models.PurchasedTicket
	bySession map[string][]string
}

func NewTicketRepository() repository.TicketRepository {
	return &ticketRepository{
		tickets:   make(map[string]*models.PurchasedTicket),
		bySession: make(map[string][]string),
	}
}

func (r *ticketRepository) Add(ctx context.Context, t *models.PurchasedTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *t
	r.tickets[t.TicketID] = &cp
	r.bySession[t.SessionID] = append(r.bySession[t.SessionID], t.TicketID)
	return nil
}

func (r *ticketRepository) Get(ctx context.Context, tID string) (*models.PurchasedTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[tID]
	if !ok {
		return nil, appErrors.ErrTicketNotFound
	}

	cp := *t
	return &cp, nil
}

func (r *ticketRepository) ListBySession(ctx context.Context, ssID string) ([]models.PurchasedTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySession[ssID]
	out := make([]models.PurchasedTicket, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.tickets[id])
	}

	return out, nil
}

func (r *ticketRepository) MarkUsed(ctx context.Context, tID string, at time.Time) (*models.PurchasedTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tickets[tID]
	if !ok {
		return nil, appErrors.ErrTicketNotFound
	}

	if !t.IsValid() {
		return nil, appErrors.ErrTicketNotValid
	}

	t.Status = models.TicketStatusUsed
	t.UsedAt = &at

	cp := *t
	return &cp, nil
}

func (r *ticketRepository) DeleteBySession(ctx context.Context, ssID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.bySession[ssID] {
		delete(r.tickets, id)
	}
	delete(r.bySession, ssID)

	return nil
}
