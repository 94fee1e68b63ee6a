package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/monitoring"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

type sessionService struct {
	guard      *SessionGuard
	sim        Simulator
	ticketRepo repository.TicketRepository
	conf       config.SessionConfig
	l          logger.Logger
}

func NewSessionService(
	guard *SessionGuard,
	sim Simulator,
	ticketRepo repository.TicketRepository,
	conf config.SessionConfig,
	l logger.Logger,
) SessionService {
	return &sessionService{
		guard:      guard,
		sim:        sim,
		ticketRepo: ticketRepo,
		conf:       conf,
		l:          l,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error) {
	now := time.Now()

	ss := &models.Session{
		ID:        uuid.New().String(),
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.conf.TTL),
	}

	if err := s.guard.Create(ctx, ss); err != nil {
		s.l.Errorf(ctx, "service.sessionService.CreateSession: %v", err)
		return nil, err
	}

	token, err := s.GenerateToken(ctx, ss)
	if err != nil {
		s.l.Errorf(ctx, "service.sessionService.CreateSession: %v", err)
		return nil, err
	}

	monitoring.SessionCreated()

	return &CreateSessionOutput{
		Session:   ss,
		Token:     token,
		ExpiresAt: ss.ExpiresAt,
	}, nil
}

func (s *sessionService) GetSession(ctx context.Context, ssID string) (*models.Session, error) {
	ss, err := s.guard.Get(ctx, ssID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			s.l.Warnf(ctx, "service.sessionService.GetSession: %v", err)
			return nil, ErrSessionNotFound
		}
		s.l.Errorf(ctx, "service.sessionService.GetSession: %v", err)
		return nil, err
	}

	if ss.IsExpired() {
		return nil, ErrSessionExpired
	}

	return ss, nil
}

func (s *sessionService) GenerateToken(ctx context.Context, ss *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": ss.ID,
		"exp":        ss.ExpiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(s.conf.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenStr, nil
}

func (s *sessionService) SessionFromToken(ctx context.Context, tokenStr string) (*models.Session, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(s.conf.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		s.l.Debugf(ctx, "service.sessionService.SessionFromToken: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	ssID, _ := claims["session_id"].(string)
	if ssID == "" {
		return nil, ErrInvalidToken
	}

	return s.GetSession(ctx, ssID)
}

// EndSession cancels everything the session still has scheduled and drops it
// together with its tickets.
func (s *sessionService) EndSession(ctx context.Context, ssID string) error {
	n := s.sim.CancelOwner(ssID)

	if err := s.guard.Delete(ctx, ssID); err != nil {
		s.l.Errorf(ctx, "service.sessionService.EndSession: %v", err)
		return err
	}

	if err := s.ticketRepo.DeleteBySession(ctx, ssID); err != nil {
		s.l.Errorf(ctx, "service.sessionService.EndSession: %v", err)
		return err
	}

	s.l.Infof(ctx, "Session ended, session_id: %s, cancelled_tasks: %d", ssID, n)
	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int, error) {
	ids, err := s.guard.PurgeExpired(ctx)
	if err != nil {
		s.l.Errorf(ctx, "service.sessionService.PurgeExpired: %v", err)
	}

	for _, ssID := range ids {
		s.sim.CancelOwner(ssID)
		if derr := s.ticketRepo.DeleteBySession(ctx, ssID); derr != nil {
			s.l.Errorf(ctx, "service.sessionService.PurgeExpired: session_id: %s: %v", ssID, derr)
			if err == nil {
				err = derr
			}
		}
	}

	if len(ids) > 0 {
		s.l.Infof(ctx, "Purged expired sessions: %d", len(ids))
	}

	return len(ids), err
}

func (s *sessionService) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = s.PurgeExpired(ctx)
		}
	}
}
