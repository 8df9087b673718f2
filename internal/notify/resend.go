package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendDispatcher delivers lifecycle emails through the Resend API.
// Whether email is configured is decided once, from an explicit constructor
// argument, and checked on every call; an unconfigured dispatcher skips
// sends silently instead of failing.
type ResendDispatcher struct {
	client      *resend.Client
	from        string
	studioEmail string
	loc         *time.Location
	logger      *zap.Logger
	configured  bool
}

func NewResendDispatcher(apiKey, from, studioEmail string, loc *time.Location, logger *zap.Logger) *ResendDispatcher {
	d := &ResendDispatcher{
		from:        from,
		studioEmail: studioEmail,
		loc:         loc,
		logger:      logger,
		configured:  apiKey != "",
	}
	if d.configured {
		d.client = resend.NewClient(apiKey)
	}
	return d
}

// Configured reports whether the dispatcher will actually send email. Used
// for the startup probe log.
func (d *ResendDispatcher) Configured() bool {
	return d.configured
}

func (d *ResendDispatcher) send(ctx context.Context, to, subject, html string) error {
	if !d.configured {
		d.logger.Debug("Email not configured, skipping send", zap.String("subject", subject))
		return nil
	}

	sent, err := d.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	d.logger.Info("Email sent",
		zap.String("message_id", sent.Id),
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}

func (d *ResendDispatcher) data(p Payload) templateData {
	return templateData{
		ClientName:  p.ClientName,
		ClientEmail: p.ClientEmail,
		ClientPhone: p.ClientPhone,
		SessionType: p.SessionType,
		Date:        FormatDate(p.StartAt, d.loc),
		Comments:    p.Comments,
	}
}

// ReservationCreated notifies the studio of a new booking request.
func (d *ResendDispatcher) ReservationCreated(ctx context.Context, p Payload) error {
	data := d.data(p)
	html, err := render(studioTmpl, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Nova reserva: %s (%s)", p.SessionType, data.Date)
	return d.send(ctx, d.studioEmail, subject, html)
}

// ReservationConfirmed notifies the client that the studio confirmed.
func (d *ResendDispatcher) ReservationConfirmed(ctx context.Context, p Payload) error {
	data := d.data(p)
	html, err := render(confirmedTmpl, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Reserva confirmada - La Camereta (%s)", data.Date)
	return d.send(ctx, p.ClientEmail, subject, html)
}

// ReservationCancelled notifies the client of a cancellation.
func (d *ResendDispatcher) ReservationCancelled(ctx context.Context, p Payload) error {
	data := d.data(p)
	html, err := render(cancelledTmpl, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Reserva cancel·lada - La Camereta (%s)", data.Date)
	return d.send(ctx, p.ClientEmail, subject, html)
}
