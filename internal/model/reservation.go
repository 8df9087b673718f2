package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusRemoved   ReservationStatus = "removed" // soft delete, hidden by the admin UI
)

// Valid reports whether s is one of the five recognized statuses. Any of
// them may be set from any prior status; only unknown values are rejected.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusCancelled,
		ReservationStatusCompleted,
		ReservationStatusRemoved:
		return true
	}
	return false
}

type Reservation struct {
	ID            uuid.UUID         `json:"id"`
	ClientID      uuid.UUID         `json:"client_id"`
	SessionTypeID uuid.UUID         `json:"session_type_id"`
	StartAt       time.Time         `json:"start_at"`
	Comments      *string           `json:"comments"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Joined data, filled by list/get queries.
	Client      *Client      `json:"client,omitempty"`
	SessionType *SessionType `json:"session_type,omitempty"`
}
