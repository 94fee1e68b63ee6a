package service

import (
	"errors"

	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
)

var (
	ErrSessionNotFound = appErrors.ErrSessionNotFound
	ErrEventNotFound   = appErrors.ErrEventNotFound
	ErrTicketNotFound  = appErrors.ErrTicketNotFound
	ErrSoldOut         = appErrors.ErrSoldOut
	ErrTicketNotValid  = appErrors.ErrTicketNotValid

	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid session token")

	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrPurchaseInFlight   = errors.New("purchase already in progress for this event")
	ErrTicketWrongEvent   = errors.New("ticket does not belong to this event")

	ErrSimulatorNotRunning = errors.New("simulator is not running")
	ErrTaskExists          = errors.New("task already scheduled")
)
