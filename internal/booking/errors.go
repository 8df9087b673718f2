package booking

import "errors"

// Failure taxonomy of the booking core. Controllers match these with
// errors.Is to pick the response tier; anything unmatched is a server
// fault.
var (
	ErrValidation          = errors.New("validation failed")
	ErrSessionTypeNotFound = errors.New("session type not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotUnavailable     = errors.New("slot is not available")
	ErrSlotClaimed         = errors.New("slot is claimed by a reservation")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)
