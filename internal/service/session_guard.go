package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
)

// errNoChange aborts a mutation without writing the session back.
var errNoChange = errors.New("no change")

// SessionGuard serializes read-modify-write cycles on a single session.
// Every service that changes a session goes through the same guard.
type SessionGuard struct {
	repo  repository.SessionRepository
	locks sync.Map // session id -> *sync.Mutex
}

func NewSessionGuard(repo repository.SessionRepository) *SessionGuard {
	return &SessionGuard{repo: repo}
}

func (g *SessionGuard) lock(ssID string) func() {
	v, _ := g.locks.LoadOrStore(ssID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Mutate loads the session, applies fn and stores the result. If fn returns
// errNoChange the loaded session is returned untouched.
func (g *SessionGuard) Mutate(ctx context.Context, ssID string, fn func(ss *models.Session) error) (*models.Session, error) {
	unlock := g.lock(ssID)
	defer unlock()

	ss, err := g.repo.Get(ctx, ssID)
	if err != nil {
		return nil, err
	}

	if err := fn(ss); err != nil {
		if errors.Is(err, errNoChange) {
			return ss, nil
		}
		return nil, err
	}

	ss.UpdatedAt = time.Now()
	if err := g.repo.Update(ctx, ss); err != nil {
		return nil, err
	}

	return ss, nil
}

func (g *SessionGuard) Get(ctx context.Context, ssID string) (*models.Session, error) {
	return g.repo.Get(ctx, ssID)
}

func (g *SessionGuard) Create(ctx context.Context, ss *models.Session) error {
	return g.repo.Create(ctx, ss)
}

func (g *SessionGuard) Delete(ctx context.Context, ssID string) error {
	unlock := g.lock(ssID)
	defer func() {
		unlock()
		g.locks.Delete(ssID)
	}()

	return g.repo.Delete(ctx, ssID)
}

// PurgeExpired drops expired sessions from the store and forgets the locks
// of every session that no longer exists. It returns the dropped ids.
func (g *SessionGuard) PurgeExpired(ctx context.Context) ([]string, error) {
	ids, err := g.repo.PurgeExpired(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		g.locks.Delete(id)
	}

	var lookupErr error
	g.locks.Range(func(k, _ any) bool {
		ssID := k.(string)
		if _, err := g.repo.Get(ctx, ssID); err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				lookupErr = err
				return false
			}
			g.locks.Delete(ssID)
			ids = append(ids, ssID)
		}
		return true
	})

	return ids, lookupErr
}
