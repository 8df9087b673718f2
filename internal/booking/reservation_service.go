package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/camereta/studio-booking/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService owns the reservation lifecycle. It is the only
// component that mutates slots, and the only caller of the dispatcher.
type ReservationService struct {
	types        SessionTypeStore
	clients      ClientStore
	reservations ReservationStore
	slots        SlotStore
	dispatcher   notify.Dispatcher
	loc          *time.Location
	logger       *zap.Logger
}

func NewReservationService(
	types SessionTypeStore,
	clients ClientStore,
	reservations ReservationStore,
	slots SlotStore,
	dispatcher notify.Dispatcher,
	loc *time.Location,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		types:        types,
		clients:      clients,
		reservations: reservations,
		slots:        slots,
		dispatcher:   dispatcher,
		loc:          loc,
		logger:       logger,
	}
}

// CreateInput is a booking request. The session type is named by its
// human-readable key, not its id.
type CreateInput struct {
	Name            string
	Email           string
	Phone           string
	SessionTypeName string
	StartAt         time.Time
	Comments        *string
}

// Create books a session: it resolves the session type, finds a free slot
// for the requested start, resolves the client, inserts a pending
// reservation and claims the slot. The claim is a single conditional write,
// so of two concurrent requests for the same time exactly one succeeds and
// the other gets ErrSlotUnavailable.
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	sessionType, err := s.types.GetByName(ctx, in.SessionTypeName)
	if err != nil {
		return nil, fmt.Errorf("resolve session type: %w", err)
	}
	if sessionType == nil {
		return nil, fmt.Errorf("session type %q: %w", in.SessionTypeName, ErrSessionTypeNotFound)
	}

	key := model.SlotKeyFor(in.StartAt, s.loc)

	slot, err := s.slots.FindFree(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("find free slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%s %s: %w", key.Date, key.Start, ErrSlotUnavailable)
	}

	client, err := s.clients.UpsertByEmail(ctx, in.Name, in.Email, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	res := &model.Reservation{
		ClientID:      client.ID,
		SessionTypeID: sessionType.ID,
		StartAt:       in.StartAt,
		Comments:      in.Comments,
		Status:        model.ReservationStatusPending,
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	claimed, err := s.slots.ClaimIfFree(ctx, slot.ID, res.ID)
	if err != nil {
		return nil, fmt.Errorf("claim slot: %w", err)
	}
	if !claimed {
		// Lost the race between the free check and the claim. Remove the
		// dangling pending reservation before reporting the slot as taken.
		if delErr := s.reservations.Delete(ctx, res.ID); delErr != nil {
			s.logger.Error("Failed to remove reservation after lost claim",
				zap.String("reservation_id", res.ID.String()),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("%s %s: %w", key.Date, key.Start, ErrSlotUnavailable)
	}

	s.logger.Info("Reservation created",
		zap.String("reservation_id", res.ID.String()),
		zap.String("client_email", client.Email),
		zap.String("session_type", sessionType.Name),
		zap.String("date", key.Date),
		zap.String("start", key.Start),
	)

	res.Client = client
	res.SessionType = sessionType

	s.notifyBestEffort(ctx, "created", s.dispatcher.ReservationCreated, s.payload(res))

	return res, nil
}

// SetStatus transitions a reservation to any of the five recognized
// statuses and applies the slot side effects of the target status before
// persisting it. Side-effect branches see the previous status.
func (s *ReservationService) SetStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (*model.Reservation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if res == nil {
		return nil, fmt.Errorf("reservation %s: %w", id, ErrReservationNotFound)
	}

	switch status {
	case model.ReservationStatusCancelled, model.ReservationStatusRemoved:
		released, err := s.slots.Release(ctx, res.ID)
		if err != nil {
			return nil, fmt.Errorf("release slots: %w", err)
		}
		if released > 0 {
			s.logger.Info("Slots released",
				zap.String("reservation_id", res.ID.String()),
				zap.Int64("count", released),
			)
		}
		if status == model.ReservationStatusCancelled {
			s.notifyBestEffort(ctx, "cancelled", s.dispatcher.ReservationCancelled, s.payload(res))
		}

	case model.ReservationStatusConfirmed:
		if res.Status != model.ReservationStatusConfirmed {
			if err := s.claimForConfirmation(ctx, res); err != nil {
				return nil, err
			}
			s.notifyBestEffort(ctx, "confirmed", s.dispatcher.ReservationConfirmed, s.payload(res))
		}
	}

	ok, err := s.reservations.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", id, ErrReservationNotFound)
	}

	s.logger.Info("Reservation status updated",
		zap.String("reservation_id", id.String()),
		zap.String("from", string(res.Status)),
		zap.String("to", string(status)),
	)

	res.Status = status
	return res, nil
}

// claimForConfirmation attaches the reservation to the slot at its start
// time, creating the slot when none was ever published for that window.
// Confirmations of historical reservations are the reason the lazy path
// exists.
func (s *ReservationService) claimForConfirmation(ctx context.Context, res *model.Reservation) error {
	key := model.SlotKeyFor(res.StartAt, s.loc)

	slot, err := s.slots.FindByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("find slot for confirmation: %w", err)
	}

	if slot == nil {
		date, err := key.DateUTC()
		if err != nil {
			return fmt.Errorf("parse slot date: %w", err)
		}
		slot = &model.Slot{
			Date:          date,
			StartTime:     key.Start,
			EndTime:       model.EndTimeFor(res.StartAt, s.loc, res.SessionType.DurationMinutes),
			IsAvailable:   false,
			ReservationID: &res.ID,
		}
		if err := s.slots.Create(ctx, slot); err != nil {
			return fmt.Errorf("create slot for confirmation: %w", err)
		}
		s.logger.Info("Slot created on confirmation",
			zap.String("reservation_id", res.ID.String()),
			zap.String("date", key.Date),
			zap.String("start", key.Start),
		)
		return nil
	}

	if err := s.slots.Claim(ctx, slot.ID, res.ID); err != nil {
		return fmt.Errorf("claim slot for confirmation: %w", err)
	}

	return nil
}

// ListAll returns reservations ordered by start time, optionally filtered
// by status. No filter includes removed reservations; hiding them is the
// admin UI's job.
func (s *ReservationService) ListAll(ctx context.Context, status *model.ReservationStatus) ([]*model.Reservation, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%q: %w", *status, ErrInvalidStatus)
	}

	reservations, err := s.reservations.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	return reservations, nil
}

// BulkDelete hard-deletes reservations. Unlike the removed status this
// erases the rows, so the slots referencing them are released first to
// keep the calendar consistent.
func (s *ReservationService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	for _, id := range ids {
		if _, err := s.slots.Release(ctx, id); err != nil {
			return 0, fmt.Errorf("release slots: %w", err)
		}
	}

	count, err := s.reservations.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete reservations: %w", err)
	}

	s.logger.Info("Reservations deleted",
		zap.Int("requested", len(ids)),
		zap.Int64("deleted", count),
	)

	return count, nil
}

// SessionTypes returns the active session types for the booking form.
func (s *ReservationService) SessionTypes(ctx context.Context) ([]*model.SessionType, error) {
	return s.types.ListActive(ctx)
}

func (s *ReservationService) payload(res *model.Reservation) notify.Payload {
	p := notify.Payload{StartAt: res.StartAt}
	if res.Client != nil {
		p.ClientName = res.Client.Name
		p.ClientEmail = res.Client.Email
		p.ClientPhone = res.Client.Phone
	}
	if res.SessionType != nil {
		p.SessionType = res.SessionType.Name
	}
	if res.Comments != nil {
		p.Comments = *res.Comments
	}
	return p
}

func (s *ReservationService) notifyBestEffort(ctx context.Context, kind string, send func(context.Context, notify.Payload) error, p notify.Payload) {
	if err := send(ctx, p); err != nil {
		s.logger.Error("Notification failed",
			zap.String("kind", kind),
			zap.String("client_email", p.ClientEmail),
			zap.Error(err),
		)
	}
}
