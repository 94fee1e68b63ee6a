package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Settle(t *testing.T) {
	tests := []struct {
		name      string
		outcome   Outcome
		wantSold  int
		wantBurnt int
	}{
		{"sold", OutcomeSold, 366, 15},
		{"burnt", OutcomeBurnt, 365, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := SeedEvents("STX")[0]
			total := ev.TotalTickets

			require.NoError(t, ev.Settle(tt.outcome))
			assert.Equal(t, 119, ev.AvailableTickets)
			assert.Equal(t, tt.wantSold, ev.SoldTickets)
			assert.Equal(t, tt.wantBurnt, ev.BurntTickets)
			assert.Equal(t, total, ev.TotalTickets)
			assert.True(t, ev.Consistent())
		})
	}
}

func TestEvent_SettleSoldOut(t *testing.T) {
	ev := SeedEvents("STX")[1]
	require.True(t, ev.IsSoldOut())

	err := ev.Settle(OutcomeSold)
	assert.ErrorIs(t, err, ErrNoTicketsLeft)
	assert.Equal(t, 185, ev.SoldTickets)
}

func TestEvent_SettleUnknownOutcome(t *testing.T) {
	ev := SeedEvents("STX")[2]
	assert.Error(t, ev.Settle(Outcome("lost")))
	assert.Equal(t, 89, ev.AvailableTickets)
}

func TestSeedEvents(t *testing.T) {
	events := SeedEvents("STX")
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.True(t, ev.Consistent(), ev.Title)
		assert.Equal(t, "STX", ev.Currency)
	}
}

func TestTransaction_Variants(t *testing.T) {
	now := time.Now()
	ev := SeedEvents("STX")[0]
	pending := NewPendingTransaction("tx-1", &ev, now)
	require.False(t, pending.IsResolved())

	ok := pending.Succeed("TKT1", "0xabc", now)
	assert.Equal(t, TransactionSuccess, ok.State)
	assert.Equal(t, "TKT1", ok.TicketID)
	assert.Empty(t, ok.Reason)
	assert.True(t, ok.IsResolved())

	fraud := pending.Flag(now)
	assert.Equal(t, TransactionFraud, fraud.State)
	assert.Empty(t, fraud.TicketID)
	assert.Empty(t, fraud.TxHash)

	failed := pending.Fail(FailureReasonSoldOut, now)
	assert.Equal(t, TransactionFailed, failed.State)
	assert.Equal(t, FailureReasonSoldOut, failed.Reason)

	assert.Equal(t, TransactionPending, pending.State, "resolving must not mutate the pending value")
}

func TestWalletSession_Disconnect(t *testing.T) {
	w := WalletSession{}
	w.Connect("SP123", time.Now())
	require.True(t, w.Connected)

	w.Disconnect()
	assert.False(t, w.Connected)
	assert.False(t, w.Connecting)
	assert.Empty(t, w.Address)
	assert.Nil(t, w.ConnectedAt)
}
