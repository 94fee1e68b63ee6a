package memory

import (
	"context"
	"errors"
	"sync"

	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
)

type eventRepository struct {
	mu     sync.RWMutex
	order  []string
	events map[string]*models.Event
}

func NewEventRepository() repository.EventRepository {
	return &eventRepository{
		events: make(map[string]*models.Event),
	}
}

func (r *eventRepository) Seed(ctx context.Context, events []models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make(map[string]*models.Event, len(events))
	r.order = r.order[:0]
	for i := range events {
		ev := events[i]
		if _, ok := r.events[ev.ID]; !ok {
			r.order = append(r.order, ev.ID)
		}
		r.events[ev.ID] = &ev
	}

	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Event, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.events[id])
	}

	return out, nil
}

func (r *eventRepository) Get(ctx context.Context, eID string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.events[eID]
	if !ok {
		return nil, appErrors.ErrEventNotFound
	}

	cp := *ev
	return &cp, nil
}

func (r *eventRepository) Settle(ctx context.Context, eID string, o models.Outcome) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[eID]
	if !ok {
		return nil, appErrors.ErrEventNotFound
	}

	if err := ev.Settle(o); err != nil {
		if errors.Is(err, models.ErrNoTicketsLeft) {
			return nil, appErrors.ErrSoldOut
		}
		return nil, err
	}

	cp := *ev
	return &cp, nil
}
