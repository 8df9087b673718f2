package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is keyed by email: the first booking from an address creates the
// record, later bookings reuse it.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
