package http

import (
	"errors"
	"net/http"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	pkgErrors "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/errors"
)

var (
	errSessionRequired = pkgErrors.NewHTTPError(10001, "Session not found or expired").WithStatus(http.StatusUnauthorized)
	errEventNotFound   = pkgErrors.NewHTTPError(10002, "Event not found").WithStatus(http.StatusNotFound)
	errTicketNotFound  = pkgErrors.NewHTTPError(10003, "Ticket not found").WithStatus(http.StatusNotFound)
	errWalletRequired  = pkgErrors.NewHTTPError(10004, "Wallet not connected").WithStatus(http.StatusConflict)
	errSoldOut         = pkgErrors.NewHTTPError(10005, "Event is sold out").WithStatus(http.StatusConflict)
	errPurchaseRunning = pkgErrors.NewHTTPError(10006, "A purchase for this event is already in progress").WithStatus(http.StatusConflict)
	errInvalidRequest  = pkgErrors.NewHTTPError(10007, "Invalid request").WithStatus(http.StatusBadRequest)
	errTicketNotValid  = pkgErrors.NewHTTPError(10008, "Ticket is not valid").WithStatus(http.StatusConflict)
)

func mapError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrInvalidToken):
		return errSessionRequired
	case errors.Is(err, service.ErrEventNotFound):
		return errEventNotFound
	case errors.Is(err, service.ErrTicketNotFound):
		return errTicketNotFound
	case errors.Is(err, service.ErrWalletNotConnected):
		return errWalletRequired
	case errors.Is(err, service.ErrSoldOut):
		return errSoldOut
	case errors.Is(err, service.ErrPurchaseInFlight):
		return errPurchaseRunning
	case errors.Is(err, service.ErrTicketNotValid), errors.Is(err, service.ErrTicketWrongEvent):
		return errTicketNotValid
	default:
		return err
	}
}

// isSilent reports errors that a page action ignores, the same way a
// disabled button would.
func isSilent(err error) bool {
	return errors.Is(err, service.ErrWalletNotConnected) ||
		errors.Is(err, service.ErrSoldOut) ||
		errors.Is(err, service.ErrPurchaseInFlight) ||
		errors.Is(err, service.ErrEventNotFound)
}
