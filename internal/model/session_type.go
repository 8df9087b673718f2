package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionType is static reference data seeded at install time. Booking
// requests refer to it by name, not by id.
type SessionType struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
