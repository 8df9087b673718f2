package notify

import (
	"context"

	"go.uber.org/zap"
)

// NoopDispatcher logs the notifications it would send. Used in development
// and tests.
type NoopDispatcher struct {
	logger *zap.Logger
}

func NewNoopDispatcher(logger *zap.Logger) *NoopDispatcher {
	return &NoopDispatcher{logger: logger}
}

func (d *NoopDispatcher) log(kind string, p Payload) {
	d.logger.Info("Notification skipped (noop dispatcher)",
		zap.String("kind", kind),
		zap.String("client_email", p.ClientEmail),
		zap.String("session_type", p.SessionType),
	)
}

func (d *NoopDispatcher) ReservationCreated(_ context.Context, p Payload) error {
	d.log("created", p)
	return nil
}

func (d *NoopDispatcher) ReservationConfirmed(_ context.Context, p Payload) error {
	d.log("confirmed", p)
	return nil
}

func (d *NoopDispatcher) ReservationCancelled(_ context.Context, p Payload) error {
	d.log("cancelled", p)
	return nil
}
