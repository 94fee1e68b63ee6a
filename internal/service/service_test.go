package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository/memory"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

type harness struct {
	guard    *SessionGuard
	events   repository.EventRepository
	tickets  repository.TicketRepository
	sim      Simulator
	sessions SessionService
	wallets  WalletService
	market   MarketplaceService
	conf     config.SimulationConfig
}

func testSimulationConfig() config.SimulationConfig {
	return config.SimulationConfig{
		PurchaseDelay:      20 * time.Millisecond,
		WalletConnectDelay: 10 * time.Millisecond,
		FraudRate:          0.2,
		MockWalletAddress:  "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
		ExplorerURL:        "https://explorer.hiro.so/txid/",
		DefaultCurrency:    "STX",
	}
}

func newHarness(t *testing.T, conf config.SimulationConfig, events []models.Event, opts ...MarketplaceOption) *harness {
	t.Helper()

	l := logger.InitializeTestZapLogger()
	ctx := context.Background()

	evRepo := memory.NewEventRepository()
	require.NoError(t, evRepo.Seed(ctx, events))
	tRepo := memory.NewTicketRepository()
	guard := NewSessionGuard(memory.NewSessionRepository())

	sim := NewSimulator(l, SimulatorConfig{ReportInterval: time.Second, ShutdownTimeout: time.Second})
	require.NoError(t, sim.Start(ctx))
	t.Cleanup(func() { _ = sim.Stop() })

	prod := producer.NewNopProducer()

	return &harness{
		guard:    guard,
		events:   evRepo,
		tickets:  tRepo,
		sim:      sim,
		sessions: NewSessionService(guard, sim, tRepo, config.SessionConfig{Secret: "test-secret", TTL: time.Hour}, l),
		wallets:  NewWalletService(guard, sim, prod, conf, l),
		market:   NewMarketplaceService(evRepo, tRepo, guard, sim, prod, conf, l, opts...),
		conf:     conf,
	}
}

func (h *harness) newSession(t *testing.T) string {
	t.Helper()
	out, err := h.sessions.CreateSession(context.Background(), CreateSessionInput{UserAgent: "test"})
	require.NoError(t, err)
	return out.Session.ID
}

// connectedSession returns a session whose wallet finished connecting.
func (h *harness) connectedSession(t *testing.T) string {
	t.Helper()
	ssID := h.newSession(t)

	_, err := h.wallets.ConnectWallet(context.Background(), ssID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		ss, err := h.sessions.GetSession(context.Background(), ssID)
		return err == nil && ss.Wallet.Connected
	}, testWait, testTick)

	return ssID
}

func (h *harness) transaction(t *testing.T, ssID string) *models.Transaction {
	t.Helper()
	ss, err := h.sessions.GetSession(context.Background(), ssID)
	require.NoError(t, err)
	return ss.Transaction
}

func (h *harness) waitResolved(t *testing.T, ssID string) *models.Transaction {
	t.Helper()
	var tx *models.Transaction
	require.Eventually(t, func() bool {
		tx = h.transaction(t, ssID)
		return tx != nil && tx.IsResolved()
	}, testWait, testTick)
	return tx
}

func (h *harness) event(t *testing.T, eID string) *models.Event {
	t.Helper()
	ev, err := h.events.Get(context.Background(), eID)
	require.NoError(t, err)
	return ev
}

func fixedDraw(v float64) MarketplaceOption {
	return WithDraw(func() float64 { return v })
}

func singleEvent(id string, available, total int) models.Event {
	return models.Event{
		ID:               id,
		Title:            "Test Event " + id,
		Date:             "2024-06-01",
		Location:         "Test Hall",
		Price:            decimal.NewFromInt(10),
		Currency:         "STX",
		AvailableTickets: available,
		SoldTickets:      total - available,
		TotalTickets:     total,
		Category:         "Test",
	}
}
