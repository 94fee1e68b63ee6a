package service

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
)

type BuyTicketInput struct {
	SessionID string `json:"-"`
	EventID   string `json:"event_id" validate:"required,max=64"`
}

type CreateSessionInput struct {
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

type CreateSessionOutput struct {
	Session   *models.Session `json:"session"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type MarkTicketUsedInput struct {
	TicketID    string    `json:"ticket_id" validate:"required"`
	EventID     string    `json:"event_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// PageState is everything needed to render the marketplace for one viewer.
type PageState struct {
	Session *models.Session          `json:"session"`
	Events  []models.Event           `json:"events"`
	Tickets []models.PurchasedTicket `json:"tickets"`
}

type SimulatorStatus struct {
	IsRunning      bool      `json:"is_running"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	PendingTasks   int       `json:"pending_tasks"`
	TotalScheduled int64     `json:"total_scheduled"`
	TotalFired     int64     `json:"total_fired"`
	TotalCancelled int64     `json:"total_cancelled"`
}
