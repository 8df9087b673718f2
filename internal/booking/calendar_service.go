package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarService manages the published slot calendar. It never touches
// reservations; claims and releases belong to the ReservationService.
type CalendarService struct {
	slots  SlotStore
	logger *zap.Logger
}

func NewCalendarService(slots SlotStore, logger *zap.Logger) *CalendarService {
	return &CalendarService{slots: slots, logger: logger}
}

func parseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, ErrValidation)
	}
	return parsed, nil
}

func validateWindow(w model.SlotWindow) error {
	if _, err := time.Parse(model.TimeLayout, w.StartTime); err != nil {
		return fmt.Errorf("start time %q is not HH:MM: %w", w.StartTime, ErrValidation)
	}
	if _, err := time.Parse(model.TimeLayout, w.EndTime); err != nil {
		return fmt.Errorf("end time %q is not HH:MM: %w", w.EndTime, ErrValidation)
	}
	return nil
}

// ListForDate returns the slots of a date ordered by start time, claimed
// ones joined with their reservation.
func (s *CalendarService) ListForDate(ctx context.Context, date string) ([]*model.Slot, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	slots, err := s.slots.ListForDate(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return slots, nil
}

// CreateSlots publishes windows for a date, all available. Windows may
// duplicate or overlap existing ones; no uniqueness is enforced.
func (s *CalendarService) CreateSlots(ctx context.Context, date string, windows []model.SlotWindow) ([]*model.Slot, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("no windows given: %w", ErrValidation)
	}

	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	for _, w := range windows {
		if err := validateWindow(w); err != nil {
			return nil, err
		}
	}

	slots, err := s.slots.CreateBatch(ctx, parsed, windows)
	if err != nil {
		return nil, fmt.Errorf("create slots: %w", err)
	}

	s.logger.Info("Slots published",
		zap.String("date", date),
		zap.Int("count", len(slots)),
	)

	return slots, nil
}

// DeleteSlot removes a slot. A claimed slot cannot be deleted.
func (s *CalendarService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return fmt.Errorf("slot %s: %w", id, ErrSlotNotFound)
	}

	deleted, err := s.slots.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if !deleted {
		return fmt.Errorf("slot %s: %w", id, ErrSlotClaimed)
	}

	return nil
}

// ToggleBlocked flips a slot between available and blocked. It does not
// look at the reservation reference; a claimed slot toggled "available" is
// still excluded from booking because the free-slot predicate also
// requires a null reservation.
func (s *CalendarService) ToggleBlocked(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	slot, err := s.slots.ToggleBlocked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", id, ErrSlotNotFound)
	}

	return slot, nil
}
