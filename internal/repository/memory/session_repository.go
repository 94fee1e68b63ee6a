package memory

import (
	"context"
	"sync"

	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*models.Session),
	}
}

func (r *sessionRepository) Create(ctx context.Context, ss *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[ss.ID] = cloneSession(ss)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, ssID string) (*models.Session, error) {
	r.mu.RLock()
	ss, ok := r.sessions[ssID]
	r.mu.RUnlock()

	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}

	if ss.IsExpired() {
		r.mu.Lock()
		delete(r.sessions, ssID)
		r.mu.Unlock()
		return nil, appErrors.ErrSessionNotFound
	}

	return cloneSession(ss), nil
}

func (r *sessionRepository) Update(ctx context.Context, ss *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[ss.ID]; !ok {
		return appErrors.ErrSessionNotFound
	}

	r.sessions[ss.ID] = cloneSession(ss)
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, ssID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, ssID)
	return nil
}

func (r *sessionRepository) PurgeExpired(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, ss := range r.sessions {
		if ss.IsExpired() {
			delete(r.sessions, id)
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func cloneSession(ss *models.Session) *models.Session {
	cp := *ss
	if ss.Wallet.ConnectedAt != nil {
		at := *ss.Wallet.ConnectedAt
		cp.Wallet.ConnectedAt = &at
	}
	if ss.Transaction != nil {
		tx := *ss.Transaction
		if tx.ResolvedAt != nil {
			at := *tx.ResolvedAt
			tx.ResolvedAt = &at
		}
		cp.Transaction = &tx
	}
	return &cp
}
