package service

import (
	"context"
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/monitoring"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

type walletService struct {
	guard *SessionGuard
	sim   Simulator
	prod  producer.Producer
	conf  config.SimulationConfig
	l     logger.Logger
}

func NewWalletService(
	guard *SessionGuard,
	sim Simulator,
	prod producer.Producer,
	conf config.SimulationConfig,
	l logger.Logger,
) WalletService {
	return &walletService{
		guard: guard,
		sim:   sim,
		prod:  prod,
		conf:  conf,
		l:     l,
	}
}

// ConnectWallet puts the wallet into the connecting state and schedules the
// mock connection. Calling it while connected or connecting changes nothing.
func (s *walletService) ConnectWallet(ctx context.Context, ssID string) (*models.WalletSession, error) {
	key := connectTaskKey(ssID)

	ss, err := s.guard.Mutate(ctx, ssID, func(ss *models.Session) error {
		if ss.Wallet.Connected {
			return errNoChange
		}
		if ss.Wallet.Connecting && s.sim.Pending(key) {
			return errNoChange
		}

		err := s.sim.Schedule(Task{
			Key:   key,
			Owner: ssID,
			Delay: s.conf.WalletConnectDelay,
			Run: func(tctx context.Context) {
				s.completeConnect(tctx, ssID)
			},
		})
		if err != nil {
			s.l.Warnf(ctx, "service.walletService.ConnectWallet: failed to schedule connect: %v", err)
			if !ss.Wallet.Connecting {
				return errNoChange
			}
			ss.Wallet.Connecting = false
			return nil
		}

		ss.Wallet.Connecting = true
		return nil
	})
	if err != nil {
		s.l.Warnf(ctx, "service.walletService.ConnectWallet: %v", err)
		return nil, err
	}

	w := ss.Wallet
	return &w, nil
}

func (s *walletService) completeConnect(ctx context.Context, ssID string) {
	bg := context.WithoutCancel(ctx)
	connected := false

	ss, err := s.guard.Mutate(bg, ssID, func(ss *models.Session) error {
		if ctx.Err() != nil || ss.Wallet.Connected {
			return errNoChange
		}

		ss.Wallet.Connect(s.conf.MockWalletAddress, time.Now())
		connected = true
		return nil
	})
	if err != nil {
		s.l.Warnf(bg, "service.walletService.completeConnect: session_id: %s: %v", ssID, err)
		return
	}

	if !connected {
		return
	}

	monitoring.WalletAction("connect")
	s.l.Infof(bg, "Wallet connected, session_id: %s, address: %s", ssID, ss.Wallet.Address)

	if err := s.prod.PublishWalletConnected(bg, kafka.WalletConnectedEvent{
		SessionID:   ssID,
		Address:     ss.Wallet.Address,
		ConnectedAt: *ss.Wallet.ConnectedAt,
	}); err != nil {
		s.l.Errorf(bg, "service.walletService.completeConnect: failed to publish: %v", err)
	}
}

// DisconnectWallet clears the wallet right away and cancels a connect that
// has not completed yet. A purchase already in flight still resolves.
func (s *walletService) DisconnectWallet(ctx context.Context, ssID string) (*models.WalletSession, error) {
	var prevAddr string

	ss, err := s.guard.Mutate(ctx, ssID, func(ss *models.Session) error {
		s.sim.Cancel(connectTaskKey(ssID))

		prevAddr = ss.Wallet.Address
		ss.Wallet.Disconnect()
		return nil
	})
	if err != nil {
		s.l.Warnf(ctx, "service.walletService.DisconnectWallet: %v", err)
		return nil, err
	}

	if prevAddr != "" {
		monitoring.WalletAction("disconnect")
		if err := s.prod.PublishWalletDisconnected(ctx, kafka.WalletDisconnectedEvent{
			SessionID:      ssID,
			Address:        prevAddr,
			DisconnectedAt: time.Now(),
		}); err != nil {
			s.l.Errorf(ctx, "service.walletService.DisconnectWallet: failed to publish: %v", err)
		}
	}

	w := ss.Wallet
	return &w, nil
}
