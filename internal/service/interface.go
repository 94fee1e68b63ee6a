package service

import (
	"context"
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
)

type SessionService interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error)
	GetSession(ctx context.Context, ssID string) (*models.Session, error)
	// SessionFromToken verifies a signed session token and loads its session.
	SessionFromToken(ctx context.Context, token string) (*models.Session, error)
	GenerateToken(ctx context.Context, ss *models.Session) (string, error)
	EndSession(ctx context.Context, ssID string) error
	// PurgeExpired releases everything held for sessions that expired
	// without being ended and returns how many were released.
	PurgeExpired(ctx context.Context) (int, error)
	// RunJanitor calls PurgeExpired every interval until ctx is done.
	RunJanitor(ctx context.Context, interval time.Duration) error
}

type WalletService interface {
	ConnectWallet(ctx context.Context, ssID string) (*models.WalletSession, error)
	DisconnectWallet(ctx context.Context, ssID string) (*models.WalletSession, error)
}

type MarketplaceService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, eID string) (*models.Event, error)
	BuyTicket(ctx context.Context, in BuyTicketInput) (*models.Transaction, error)
	DismissTransaction(ctx context.Context, ssID string) error
	ListTickets(ctx context.Context, ssID string) ([]models.PurchasedTicket, error)
	GetTicket(ctx context.Context, ssID, tID string) (*models.PurchasedTicket, error)
	MarkTicketUsed(ctx context.Context, in MarkTicketUsedInput) (*models.PurchasedTicket, error)
	GetPageState(ctx context.Context, ssID string) (*PageState, error)
}
