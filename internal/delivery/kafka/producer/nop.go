package producer

import (
	"context"

	kafka "github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka"
)

type nopProducer struct{}

// NewNopProducer returns a Producer that drops every event. It is used when
// Kafka is disabled.
func NewNopProducer() Producer {
	return nopProducer{}
}

func (nopProducer) PublishWalletConnected(context.Context, kafka.WalletConnectedEvent) error {
	return nil
}

func (nopProducer) PublishWalletDisconnected(context.Context, kafka.WalletDisconnectedEvent) error {
	return nil
}

func (nopProducer) PublishTicketMinted(context.Context, kafka.TicketMintedEvent) error {
	return nil
}

func (nopProducer) PublishTicketBurnt(context.Context, kafka.TicketBurntEvent) error {
	return nil
}

func (nopProducer) PublishPurchaseFailed(context.Context, kafka.PurchaseFailedEvent) error {
	return nil
}

func (nopProducer) Close() error { return nil }
