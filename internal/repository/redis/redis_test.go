package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Create(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisSessionRepository(db, time.Hour, logger.InitializeTestZapLogger())

	ss := &models.Session{ID: "s1", CreatedAt: time.Unix(1700000000, 0).UTC()}
	data, err := json.Marshal(ss)
	require.NoError(t, err)

	mock.ExpectSet(sessionKey("s1"), data, time.Hour).SetVal("OK")

	require.NoError(t, repo.Create(context.Background(), ss))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetNotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisSessionRepository(db, time.Hour, logger.InitializeTestZapLogger())

	mock.ExpectGet(sessionKey("missing")).RedisNil()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetDecodes(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisSessionRepository(db, time.Hour, logger.InitializeTestZapLogger())

	stored := models.Session{
		ID:     "s1",
		Wallet: models.WalletSession{Connected: true, Address: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"},
		Transaction: &models.Transaction{
			ID:     "tx1",
			State:  models.TransactionFailed,
			Reason: models.FailureReasonSoldOut,
		},
	}
	data, err := json.Marshal(stored)
	require.NoError(t, err)

	mock.ExpectGet(sessionKey("s1")).SetVal(string(data))

	ss, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, ss.Wallet.Connected)
	require.NotNil(t, ss.Transaction)
	assert.Equal(t, models.TransactionFailed, ss.Transaction.State)
	assert.Equal(t, models.FailureReasonSoldOut, ss.Transaction.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_UpdateMissing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisSessionRepository(db, time.Hour, logger.InitializeTestZapLogger())

	ss := &models.Session{ID: "gone"}
	data, err := json.Marshal(ss)
	require.NoError(t, err)

	mock.ExpectSetXX(sessionKey("gone"), data, redis.KeepTTL).SetVal(false)

	err = repo.Update(context.Background(), ss)
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_SettleSoldOut(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisEventRepository(db, logger.InitializeTestZapLogger())

	mock.ExpectEval(settleScript, []string{eventKey("2")}, fieldBurnt).SetVal(int64(0))

	_, err := repo.Settle(context.Background(), "2", models.OutcomeBurnt)
	assert.ErrorIs(t, err, appErrors.ErrSoldOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_SettleMissing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisEventRepository(db, logger.InitializeTestZapLogger())

	mock.ExpectEval(settleScript, []string{eventKey("404")}, fieldSold).SetVal(int64(-1))

	_, err := repo.Settle(context.Background(), "404", models.OutcomeSold)
	assert.ErrorIs(t, err, appErrors.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_SeedOverwritesInventory(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisEventRepository(db, logger.InitializeTestZapLogger())

	events := models.SeedEvents("STX")

	mock.ExpectTxPipeline()
	mock.ExpectDel(eventsIndexKey()).SetVal(1)
	for i, ev := range events {
		meta, err := json.Marshal(ev)
		require.NoError(t, err)

		mock.ExpectHSet(eventKey(ev.ID),
			fieldMeta, string(meta),
			fieldAvailable, ev.AvailableTickets,
			fieldSold, ev.SoldTickets,
			fieldBurnt, ev.BurntTickets,
			fieldTotal, ev.TotalTickets,
		).SetVal(0)
		mock.ExpectZAdd(eventsIndexKey(), redis.Z{Score: float64(i), Member: ev.ID}).SetVal(1)
	}
	mock.ExpectTxPipelineExec()

	require.NoError(t, repo.Seed(context.Background(), events))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_SettleSold(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisEventRepository(db, logger.InitializeTestZapLogger())

	seed := models.SeedEvents("STX")[0]
	meta, err := json.Marshal(seed)
	require.NoError(t, err)

	mock.ExpectEval(settleScript, []string{eventKey("1")}, fieldSold).SetVal(int64(1))
	mock.ExpectHGetAll(eventKey("1")).SetVal(map[string]string{
		fieldMeta:      string(meta),
		fieldAvailable: "119",
		fieldSold:      "366",
		fieldBurnt:     "15",
		fieldTotal:     "500",
	})

	ev, err := repo.Settle(context.Background(), "1", models.OutcomeSold)
	require.NoError(t, err)
	assert.Equal(t, "Neon Dreams Festival", ev.Title)
	assert.Equal(t, 119, ev.AvailableTickets)
	assert.Equal(t, 366, ev.SoldTickets)
	assert.True(t, ev.Consistent())
	assert.True(t, ev.Price.Equal(seed.Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_SettleUnknownOutcome(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisEventRepository(db, logger.InitializeTestZapLogger())

	_, err := repo.Settle(context.Background(), "1", models.Outcome("refunded"))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetMissing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisEventRepository(db, logger.InitializeTestZapLogger())

	mock.ExpectHGetAll(eventKey("nope")).SetVal(map[string]string{})

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, appErrors.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_ListBySessionSkipsExpired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisTicketRepository(db, time.Hour, logger.InitializeTestZapLogger())

	ev := models.SeedEvents("STX")[2]
	t1 := models.NewPurchasedTicket("T1", "s1", "0xabc", &ev, time.Unix(1700000000, 0).UTC())
	data, err := json.Marshal(t1)
	require.NoError(t, err)

	mock.ExpectLRange(sessionTicketsKey("s1"), 0, -1).SetVal([]string{"T1", "T2"})
	mock.ExpectMGet(ticketKey("T1"), ticketKey("T2")).SetVal([]interface{}{string(data), nil})

	tickets, err := repo.ListBySession(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "T1", tickets[0].TicketID)
	assert.Equal(t, models.TicketStatusValid, tickets[0].Status)
	assert.Equal(t, "Cyber Punk Concert", tickets[0].EventTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_ListBySessionEmpty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisTicketRepository(db, time.Hour, logger.InitializeTestZapLogger())

	mock.ExpectLRange(sessionTicketsKey("s1"), 0, -1).SetVal([]string{})

	tickets, err := repo.ListBySession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_GetNotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisTicketRepository(db, time.Hour, logger.InitializeTestZapLogger())

	mock.ExpectGet(ticketKey("T9")).RedisNil()

	_, err := repo.Get(context.Background(), "T9")
	assert.ErrorIs(t, err, appErrors.ErrTicketNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_MarkUsed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisTicketRepository(db, time.Hour, logger.InitializeTestZapLogger())

	ev := models.SeedEvents("STX")[0]
	checkedIn := time.Date(2024, 3, 15, 20, 5, 0, 0, time.UTC)
	used := models.NewPurchasedTicket("TKT1", "s1", "0xabc", &ev, time.Now())
	used.Status = models.TicketStatusUsed
	used.UsedAt = &checkedIn
	data, err := json.Marshal(used)
	require.NoError(t, err)

	at := checkedIn.Format(time.RFC3339Nano)
	mock.ExpectEval(markUsedScript, []string{ticketKey("TKT1")}, at).SetVal(string(data))
	mock.ExpectEval(markUsedScript, []string{ticketKey("TKT1")}, at).SetVal(int64(0))
	mock.ExpectEval(markUsedScript, []string{ticketKey("nope")}, at).SetVal(int64(-1))

	got, err := repo.MarkUsed(context.Background(), "TKT1", checkedIn)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusUsed, got.Status)
	require.NotNil(t, got.UsedAt)
	assert.True(t, got.UsedAt.Equal(checkedIn))

	_, err = repo.MarkUsed(context.Background(), "TKT1", checkedIn)
	assert.ErrorIs(t, err, appErrors.ErrTicketNotValid)

	_, err = repo.MarkUsed(context.Background(), "nope", checkedIn)
	assert.ErrorIs(t, err, appErrors.ErrTicketNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_DeleteBySession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewRedisTicketRepository(db, time.Hour, logger.InitializeTestZapLogger())

	mock.ExpectLRange(sessionTicketsKey("s1"), 0, -1).SetVal([]string{"T1", "T2"})
	mock.ExpectDel(sessionTicketsKey("s1"), ticketKey("T1"), ticketKey("T2")).SetVal(3)

	require.NoError(t, repo.DeleteBySession(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
