package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

func TestCreateSession_TokenRoundTrip(t *testing.T) {
	h := newHarness(t, testSimulationConfig(), models.SeedEvents("STX"))
	ctx := context.Background()

	out, err := h.sessions.CreateSession(ctx, CreateSessionInput{UserAgent: "ua", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.False(t, out.Session.Wallet.Connected)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, 5*time.Second)

	ss, err := h.sessions.SessionFromToken(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Session.ID, ss.ID)
	assert.Equal(t, "10.0.0.1", ss.IPAddress)
}

func TestSessionFromToken_Rejects(t *testing.T) {
	h := newHarness(t, testSimulationConfig(), models.SeedEvents("STX"))
	ctx := context.Background()

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": "anything",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	forgedStr, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": "anything",
		"exp":        time.Now().Add(-time.Hour).Unix(),
	})
	expiredStr, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", forgedStr},
		{"expired", expiredStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.sessions.SessionFromToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSessionFromToken_SessionGone(t *testing.T) {
	h := newHarness(t, testSimulationConfig(), models.SeedEvents("STX"))
	ctx := context.Background()

	out, err := h.sessions.CreateSession(ctx, CreateSessionInput{})
	require.NoError(t, err)
	require.NoError(t, h.sessions.EndSession(ctx, out.Session.ID))

	_, err = h.sessions.SessionFromToken(ctx, out.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEndSession_CancelsTasks(t *testing.T) {
	conf := testSimulationConfig()
	conf.PurchaseDelay = time.Hour
	h := newHarness(t, conf, models.SeedEvents("STX"))
	ssID := h.connectedSession(t)
	ctx := context.Background()

	_, err := h.market.BuyTicket(ctx, BuyTicketInput{SessionID: ssID, EventID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.sim.GetStatus().PendingTasks)

	require.NoError(t, h.sessions.EndSession(ctx, ssID))
	assert.Equal(t, 0, h.sim.GetStatus().PendingTasks)

	_, err = h.sessions.GetSession(ctx, ssID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEndSession_DropsTickets(t *testing.T) {
	h := newHarness(t, testSimulationConfig(), models.SeedEvents("STX"), fixedDraw(0.9))
	ssID := h.connectedSession(t)
	ctx := context.Background()

	_, err := h.market.BuyTicket(ctx, BuyTicketInput{SessionID: ssID, EventID: "1"})
	require.NoError(t, err)
	tx := h.waitResolved(t, ssID)

	require.NoError(t, h.sessions.EndSession(ctx, ssID))

	_, err = h.tickets.Get(ctx, tx.TicketID)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestPurgeExpired_ReleasesSessionState(t *testing.T) {
	h := newHarness(t, testSimulationConfig(), models.SeedEvents("STX"))
	l := logger.InitializeTestZapLogger()
	ctx := context.Background()

	short := NewSessionService(h.guard, h.sim, h.tickets,
		config.SessionConfig{Secret: "test-secret", TTL: 30 * time.Millisecond}, l)

	out, err := short.CreateSession(ctx, CreateSessionInput{})
	require.NoError(t, err)
	ssID := out.Session.ID
	live := h.newSession(t)

	for _, id := range []string{ssID, live} {
		_, err = h.guard.Mutate(ctx, id, func(*models.Session) error { return errNoChange })
		require.NoError(t, err)
	}

	ev := models.SeedEvents("STX")[0]
	require.NoError(t, h.tickets.Add(ctx, models.NewPurchasedTicket("TKT1", ssID, "0x1", &ev, time.Now())))

	time.Sleep(50 * time.Millisecond)

	n, err := short.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok := h.guard.locks.Load(ssID)
	assert.False(t, ok)
	_, ok = h.guard.locks.Load(live)
	assert.True(t, ok)

	tickets, err := h.tickets.ListBySession(ctx, ssID)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	n, err = short.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunJanitor_StopsWithContext(t *testing.T) {
	h := newHarness(t, testSimulationConfig(), models.SeedEvents("STX"))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.sessions.RunJanitor(ctx, 5*time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(testWait):
		t.Fatal("janitor did not stop")
	}
}
