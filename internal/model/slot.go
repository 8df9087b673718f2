package model

import (
	"time"

	"github.com/google/uuid"
)

// Slot is one bookable window on one date. A free slot has IsAvailable=true
// and no reservation; a claimed slot has IsAvailable=false and a reservation
// id. IsAvailable=false with no reservation is an admin-blocked slot.
type Slot struct {
	ID            uuid.UUID  `json:"id"`
	Date          time.Time  `json:"date"` // date only, UTC midnight
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	IsAvailable   bool       `json:"is_available"`
	ReservationID *uuid.UUID `json:"reservation_id"`
	CreatedAt     time.Time  `json:"created_at"`

	// Joined reservation, filled for the admin calendar.
	Reservation *Reservation `json:"reservation,omitempty"`
}

// SlotWindow is a start/end pair used when publishing slots for a date.
type SlotWindow struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
