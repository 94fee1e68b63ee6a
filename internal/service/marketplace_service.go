package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/monitoring"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/util"
)

type marketplaceService struct {
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	guard      *SessionGuard
	sim        Simulator
	prod       producer.Producer
	conf       config.SimulationConfig
	l          logger.Logger

	// draw returns a uniform value in [0,1) for the fraud check.
	draw func() float64
}

type MarketplaceOption func(*marketplaceService)

// WithDraw replaces the random source used to pick purchase outcomes.
func WithDraw(draw func() float64) MarketplaceOption {
	return func(s *marketplaceService) {
		s.draw = draw
	}
}

func NewMarketplaceService(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	guard *SessionGuard,
	sim Simulator,
	prod producer.Producer,
	conf config.SimulationConfig,
	l logger.Logger,
	opts ...MarketplaceOption,
) MarketplaceService {
	s := &marketplaceService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		guard:      guard,
		sim:        sim,
		prod:       prod,
		conf:       conf,
		l:          l,
		draw:       rand.Float64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *marketplaceService) ListEvents(ctx context.Context) ([]models.Event, error) {
	evs, err := s.eventRepo.List(ctx)
	if err != nil {
		s.l.Errorf(ctx, "service.marketplaceService.ListEvents: %v", err)
		return nil, err
	}

	return evs, nil
}

func (s *marketplaceService) GetEvent(ctx context.Context, eID string) (*models.Event, error) {
	ev, err := s.eventRepo.Get(ctx, eID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			s.l.Warnf(ctx, "service.marketplaceService.GetEvent: %v", err)
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.marketplaceService.GetEvent: %v", err)
		return nil, err
	}

	return ev, nil
}

// BuyTicket starts a simulated purchase. A session without a connected
// wallet and a sold out event are both rejected without touching any state.
func (s *marketplaceService) BuyTicket(ctx context.Context, in BuyTicketInput) (*models.Transaction, error) {
	ev, err := s.GetEvent(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	key := purchaseTaskKey(in.SessionID, ev.ID)
	var tx *models.Transaction

	_, err = s.guard.Mutate(ctx, in.SessionID, func(ss *models.Session) error {
		if !ss.Wallet.Connected {
			return ErrWalletNotConnected
		}
		if ev.IsSoldOut() {
			return ErrSoldOut
		}
		if s.sim.Pending(key) {
			return ErrPurchaseInFlight
		}

		pending := models.NewPendingTransaction(uuid.New().String(), ev, time.Now())
		err := s.sim.Schedule(Task{
			Key:   key,
			Owner: in.SessionID,
			Delay: s.conf.PurchaseDelay,
			Run: func(tctx context.Context) {
				s.resolvePurchase(tctx, in.SessionID, pending)
			},
			OnCancel: func(cctx context.Context) {
				s.cancelPurchase(cctx, in.SessionID, pending)
			},
		})
		if err != nil {
			return fmt.Errorf("failed to schedule purchase: %w", err)
		}
		monitoring.PurchaseStarted()

		tx = pending
		ss.Transaction = pending
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrWalletNotConnected), errors.Is(err, ErrSoldOut), errors.Is(err, ErrPurchaseInFlight):
			s.l.Debugf(ctx, "service.marketplaceService.BuyTicket: %v", err)
		default:
			s.l.Errorf(ctx, "service.marketplaceService.BuyTicket: %v", err)
			if tx != nil {
				s.sim.Cancel(key)
			}
		}
		return nil, err
	}

	s.l.Infof(ctx, "Purchase started, session_id: %s, event_id: %s, transaction_id: %s", in.SessionID, ev.ID, tx.ID)
	return tx, nil
}

func (s *marketplaceService) resolvePurchase(ctx context.Context, ssID string, pending *models.Transaction) {
	bg := context.WithoutCancel(ctx)

	var (
		resolved *models.Transaction
		minted   *models.PurchasedTicket
	)

	_, err := s.guard.Mutate(bg, ssID, func(ss *models.Session) error {
		if ctx.Err() != nil {
			resolved = pending.Fail(models.FailureReasonCancelled, time.Now())
		} else {
			resolved, minted = s.settle(bg, ssID, pending)
		}

		if !applyResolution(ss, resolved) {
			return errNoChange
		}
		return nil
	})
	if err != nil {
		s.l.Warnf(bg, "service.marketplaceService.resolvePurchase: session_id: %s: %v", ssID, err)
		if resolved == nil {
			resolved = pending.Fail(models.FailureReasonCancelled, time.Now())
		}
	}

	s.report(bg, ssID, resolved, minted)
}

// settle draws the outcome and applies it to the event inventory. It always
// returns a resolved transaction; store failures resolve it as failed.
func (s *marketplaceService) settle(ctx context.Context, ssID string, pending *models.Transaction) (*models.Transaction, *models.PurchasedTicket) {
	outcome := models.OutcomeSold
	if s.draw() < s.conf.FraudRate {
		outcome = models.OutcomeBurnt
	}

	ev, err := s.eventRepo.Settle(ctx, pending.EventID, outcome)
	now := time.Now()
	if err != nil {
		if errors.Is(err, ErrSoldOut) {
			return pending.Fail(models.FailureReasonSoldOut, now), nil
		}
		s.l.Errorf(ctx, "service.marketplaceService.settle: %v", err)
		return pending.Fail(models.FailureReasonSettlement, now), nil
	}

	if outcome == models.OutcomeBurnt {
		return pending.Flag(now), nil
	}

	t, err := s.mint(ctx, ssID, ev, now)
	if err != nil {
		s.l.Errorf(ctx, "service.marketplaceService.settle: %v", err)
		return pending.Fail(models.FailureReasonSettlement, now), nil
	}

	return pending.Succeed(t.TicketID, t.TxHash, now), t
}

func (s *marketplaceService) mint(ctx context.Context, ssID string, ev *models.Event, now time.Time) (*models.PurchasedTicket, error) {
	tID, err := util.NewTicketID(now)
	if err != nil {
		return nil, err
	}

	hash, err := util.NewTxHash(tID)
	if err != nil {
		return nil, err
	}

	t := models.NewPurchasedTicket(tID, ssID, hash, ev, now)
	if err := s.ticketRepo.Add(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to store ticket: %w", err)
	}

	return t, nil
}

func (s *marketplaceService) cancelPurchase(ctx context.Context, ssID string, pending *models.Transaction) {
	resolved := pending.Fail(models.FailureReasonCancelled, time.Now())

	_, err := s.guard.Mutate(ctx, ssID, func(ss *models.Session) error {
		if !applyResolution(ss, resolved) {
			return errNoChange
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		s.l.Warnf(ctx, "service.marketplaceService.cancelPurchase: %v", err)
	}

	s.report(ctx, ssID, resolved, nil)
}

// applyResolution shows resolved as the session's current transaction unless
// that would hide a different purchase that is still pending, or the same
// purchase has already been resolved.
func applyResolution(ss *models.Session, resolved *models.Transaction) bool {
	cur := ss.Transaction
	switch {
	case cur == nil:
	case cur.ID == resolved.ID:
		if cur.IsResolved() {
			return false
		}
	case !cur.IsResolved():
		return false
	}

	ss.Transaction = resolved
	return true
}

func (s *marketplaceService) report(ctx context.Context, ssID string, tx *models.Transaction, t *models.PurchasedTicket) {
	monitoring.PurchaseResolved(string(tx.State))
	s.l.Infof(ctx, "Purchase resolved, session_id: %s, event_id: %s, transaction_id: %s, state: %s",
		ssID, tx.EventID, tx.ID, tx.State)

	var err error
	switch tx.State {
	case models.TransactionSuccess:
		err = s.prod.PublishTicketMinted(ctx, kafka.TicketMintedEvent{
			TicketID:      t.TicketID,
			TransactionID: tx.ID,
			SessionID:     ssID,
			EventID:       t.EventID,
			TxHash:        t.TxHash,
			Price:         t.Price.String(),
			Currency:      t.Currency,
			MintedAt:      t.MintedAt,
		})
	case models.TransactionFraud:
		err = s.prod.PublishTicketBurnt(ctx, kafka.TicketBurntEvent{
			TransactionID: tx.ID,
			SessionID:     ssID,
			EventID:       tx.EventID,
			BurntAt:       *tx.ResolvedAt,
		})
	case models.TransactionFailed:
		err = s.prod.PublishPurchaseFailed(ctx, kafka.PurchaseFailedEvent{
			TransactionID: tx.ID,
			SessionID:     ssID,
			EventID:       tx.EventID,
			Reason:        tx.Reason,
			FailedAt:      *tx.ResolvedAt,
		})
	}
	if err != nil {
		s.l.Errorf(ctx, "service.marketplaceService.report: failed to publish: %v", err)
	}
}

func (s *marketplaceService) DismissTransaction(ctx context.Context, ssID string) error {
	_, err := s.guard.Mutate(ctx, ssID, func(ss *models.Session) error {
		if ss.Transaction == nil {
			return errNoChange
		}
		ss.Transaction = nil
		return nil
	})
	if err != nil {
		s.l.Warnf(ctx, "service.marketplaceService.DismissTransaction: %v", err)
		return err
	}

	return nil
}

func (s *marketplaceService) ListTickets(ctx context.Context, ssID string) ([]models.PurchasedTicket, error) {
	if _, err := s.guard.Get(ctx, ssID); err != nil {
		s.l.Warnf(ctx, "service.marketplaceService.ListTickets: %v", err)
		return nil, err
	}

	ts, err := s.ticketRepo.ListBySession(ctx, ssID)
	if err != nil {
		s.l.Errorf(ctx, "service.marketplaceService.ListTickets: %v", err)
		return nil, err
	}

	return ts, nil
}

func (s *marketplaceService) GetTicket(ctx context.Context, ssID, tID string) (*models.PurchasedTicket, error) {
	t, err := s.ticketRepo.Get(ctx, tID)
	if err != nil {
		s.l.Warnf(ctx, "service.marketplaceService.GetTicket: %v", err)
		return nil, err
	}

	if t.SessionID != ssID {
		return nil, ErrTicketNotFound
	}

	return t, nil
}

// MarkTicketUsed records a gate check-in at in.CheckedInAt, or now when it is
// unset. Only valid tickets can be used, and only once.
func (s *marketplaceService) MarkTicketUsed(ctx context.Context, in MarkTicketUsedInput) (*models.PurchasedTicket, error) {
	t, err := s.ticketRepo.Get(ctx, in.TicketID)
	if err != nil {
		s.l.Warnf(ctx, "service.marketplaceService.MarkTicketUsed: %v", err)
		return nil, err
	}

	if in.EventID != "" && in.EventID != t.EventID {
		return nil, ErrTicketWrongEvent
	}

	at := in.CheckedInAt
	if at.IsZero() {
		at = time.Now()
	}

	t, err = s.ticketRepo.MarkUsed(ctx, in.TicketID, at)
	if err != nil {
		if errors.Is(err, ErrTicketNotValid) || errors.Is(err, ErrTicketNotFound) {
			s.l.Warnf(ctx, "service.marketplaceService.MarkTicketUsed: %v", err)
			return nil, err
		}
		s.l.Errorf(ctx, "service.marketplaceService.MarkTicketUsed: %v", err)
		return nil, err
	}

	s.l.Infof(ctx, "Ticket checked in, ticket_id: %s, event_id: %s", t.TicketID, t.EventID)
	return t, nil
}

func (s *marketplaceService) GetPageState(ctx context.Context, ssID string) (*PageState, error) {
	ss, err := s.guard.Get(ctx, ssID)
	if err != nil {
		s.l.Warnf(ctx, "service.marketplaceService.GetPageState: %v", err)
		return nil, err
	}

	out := &PageState{Session: ss}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		evs, err := s.eventRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		out.Events = evs
		return nil
	})
	g.Go(func() error {
		ts, err := s.ticketRepo.ListBySession(gctx, ssID)
		if err != nil {
			return fmt.Errorf("failed to list tickets: %w", err)
		}
		out.Tickets = ts
		return nil
	})

	if err := g.Wait(); err != nil {
		s.l.Errorf(ctx, "service.marketplaceService.GetPageState: %v", err)
		return nil, err
	}

	return out, nil
}
