package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
)

// HandleTicketCheckedIn marks a scanned ticket as used. Tickets that are
// unknown or no longer valid are logged and skipped, since redelivery
// cannot change the outcome.
func (c *Consumer) HandleTicketCheckedIn(ctx context.Context, message *sarama.ConsumerMessage) error {
	c.l.Info(ctx, "HandleTicketCheckedIn consumed")

	var e kafka.TicketCheckedInEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleTicketCheckedIn: %v", err)
		return err
	}

	_, err := c.mktSvc.MarkTicketUsed(ctx, service.MarkTicketUsedInput{
		TicketID:    e.TicketID,
		EventID:     e.EventID,
		CheckedInAt: e.CheckedInAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) ||
			errors.Is(err, service.ErrTicketNotValid) ||
			errors.Is(err, service.ErrTicketWrongEvent) {
			c.l.Warnf(ctx, "delivery.kafka.consumer.handlers.HandleTicketCheckedIn: ticket_id: %s: %v", e.TicketID, err)
			return nil
		}
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleTicketCheckedIn: %v", err)
		return err
	}

	return nil
}
