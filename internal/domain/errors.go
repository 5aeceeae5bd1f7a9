package domain

import "errors"

// Sentinel errors for booking and lookup outcomes. All of these are expected
// business results, not defects; callers translate them into user-facing
// messages or HTTP statuses.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrSoldOut        = errors.New("event is sold out")
	ErrAlreadyBooked  = errors.New("ticket already booked for this event")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
)
