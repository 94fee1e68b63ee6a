package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

type fakeMarketplace struct {
	service.MarketplaceService
	calls []service.MarkTicketUsedInput
	err   error
}

func (f *fakeMarketplace) MarkTicketUsed(_ context.Context, in service.MarkTicketUsedInput) (*models.PurchasedTicket, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return &models.PurchasedTicket{TicketID: in.TicketID, Status: models.TicketStatusUsed}, nil
}

func message(t *testing.T, topic string, v any) *sarama.ConsumerMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: topic, Value: raw}
}

func TestProcessMessage_TicketCheckedIn(t *testing.T) {
	mkt := &fakeMarketplace{}
	c := NewConsumer(nil, mkt, logger.InitializeTestZapLogger())

	checkedIn := time.Date(2024, 3, 15, 20, 5, 0, 0, time.UTC)
	err := c.processMessage(context.Background(), message(t, kafka.TopicTicketCheckedIn, kafka.TicketCheckedInEvent{
		TicketID:    "TKT1",
		EventID:     "1",
		CheckedInAt: checkedIn,
	}))
	require.NoError(t, err)
	require.Len(t, mkt.calls, 1)
	assert.Equal(t, "TKT1", mkt.calls[0].TicketID)
	assert.Equal(t, "1", mkt.calls[0].EventID)
	assert.True(t, mkt.calls[0].CheckedInAt.Equal(checkedIn))
}

func TestProcessMessage_SkipsInvalidTickets(t *testing.T) {
	for _, e := range []error{service.ErrTicketNotFound, service.ErrTicketNotValid, service.ErrTicketWrongEvent} {
		mkt := &fakeMarketplace{err: e}
		c := NewConsumer(nil, mkt, logger.InitializeTestZapLogger())

		err := c.processMessage(context.Background(), message(t, kafka.TopicTicketCheckedIn, kafka.TicketCheckedInEvent{TicketID: "TKT1"}))
		assert.NoError(t, err, e.Error())
	}
}

func TestProcessMessage_Errors(t *testing.T) {
	mkt := &fakeMarketplace{err: errors.New("redis down")}
	c := NewConsumer(nil, mkt, logger.InitializeTestZapLogger())

	err := c.processMessage(context.Background(), message(t, kafka.TopicTicketCheckedIn, kafka.TicketCheckedInEvent{TicketID: "TKT1"}))
	assert.Error(t, err)

	err = c.processMessage(context.Background(), &sarama.ConsumerMessage{Topic: kafka.TopicTicketCheckedIn, Value: []byte("{")})
	assert.Error(t, err)

	err = c.processMessage(context.Background(), &sarama.ConsumerMessage{Topic: "other.topic"})
	assert.NoError(t, err)
}
