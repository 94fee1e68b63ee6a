package errors

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrSoldOut         = errors.New("event is sold out")
	ErrTicketNotValid  = errors.New("ticket is not valid")
)
