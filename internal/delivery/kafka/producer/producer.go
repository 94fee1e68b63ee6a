package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	kafka "github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

type Producer interface {
	PublishWalletConnected(ctx context.Context, event kafka.WalletConnectedEvent) error
	PublishWalletDisconnected(ctx context.Context, event kafka.WalletDisconnectedEvent) error
	PublishTicketMinted(ctx context.Context, event kafka.TicketMintedEvent) error
	PublishTicketBurnt(ctx context.Context, event kafka.TicketBurntEvent) error
	PublishPurchaseFailed(ctx context.Context, event kafka.PurchaseFailedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) PublishWalletConnected(ctx context.Context, event kafka.WalletConnectedEvent) error {
	event.Timestamp = time.Now()
	return p.publish(ctx, kafka.TopicWalletConnected, event.SessionID, event)
}

func (p *implProducer) PublishWalletDisconnected(ctx context.Context, event kafka.WalletDisconnectedEvent) error {
	event.Timestamp = time.Now()
	return p.publish(ctx, kafka.TopicWalletDisconnected, event.SessionID, event)
}

func (p *implProducer) PublishTicketMinted(ctx context.Context, event kafka.TicketMintedEvent) error {
	event.Timestamp = time.Now()
	return p.publish(ctx, kafka.TopicTicketMinted, event.EventID, event)
}

func (p *implProducer) PublishTicketBurnt(ctx context.Context, event kafka.TicketBurntEvent) error {
	event.Timestamp = time.Now()
	return p.publish(ctx, kafka.TopicTicketBurnt, event.EventID, event)
}

func (p *implProducer) PublishPurchaseFailed(ctx context.Context, event kafka.PurchaseFailedEvent) error {
	event.Timestamp = time.Now()
	return p.publish(ctx, kafka.TopicPurchaseFailed, event.EventID, event)
}

// publish sends one JSON message. Ticket events are keyed by event id so
// per-event inventory changes stay ordered; wallet events by session id.
func (p *implProducer) publish(ctx context.Context, topic, key string, event any) error {
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.publish: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
