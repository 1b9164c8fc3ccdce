package errors

import "errors"

var (
	ErrNotFound = errors.New("client not found")

	ErrInvalidID = errors.New("invalid client ID format")

	ErrReservationNotFound = errors.New("reservation not found")

	ErrDuplicateReservation = errors.New("reservation ID already exists on client")
)
