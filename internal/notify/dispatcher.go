package notify

import (
	"context"
	"time"
)

// Payload carries the client and session snapshot a notification is built
// from. Lifecycle callers snapshot it before mutating the reservation so a
// cancellation mail reflects the pre-update state.
type Payload struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	SessionType string
	StartAt     time.Time
	Comments    string
}

// Dispatcher sends reservation lifecycle emails. Every call is best-effort:
// implementations report failures through the returned error, callers log
// and swallow it. A failed notification never fails the reservation.
type Dispatcher interface {
	ReservationCreated(ctx context.Context, p Payload) error
	ReservationConfirmed(ctx context.Context, p Payload) error
	ReservationCancelled(ctx context.Context, p Payload) error
}
