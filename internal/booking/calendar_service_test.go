package booking_test

import (
	"context"
	"testing"

	"github.com/camereta/studio-booking/internal/booking"
	"github.com/camereta/studio-booking/internal/booking/bookingtest"
	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCalendar(t *testing.T) (*booking.CalendarService, *bookingtest.Store) {
	t.Helper()
	store := bookingtest.NewStore()
	return booking.NewCalendarService(store.SlotStore(), zap.NewNop()), store
}

func TestCreateSlotsPublishesWindows(t *testing.T) {
	svc, store := newCalendar(t)

	slots, err := svc.CreateSlots(context.Background(), "2025-12-24", []model.SlotWindow{
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "12:00"},
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	for _, slot := range slots {
		require.True(t, slot.IsAvailable)
		require.Nil(t, slot.ReservationID)
	}
	require.Len(t, store.Slots, 2)
}

func TestCreateSlotsValidation(t *testing.T) {
	svc, _ := newCalendar(t)
	ctx := context.Background()

	_, err := svc.CreateSlots(ctx, "2025-12-24", nil)
	require.ErrorIs(t, err, booking.ErrValidation)

	_, err = svc.CreateSlots(ctx, "24/12/2025", []model.SlotWindow{{StartTime: "10:00", EndTime: "11:00"}})
	require.ErrorIs(t, err, booking.ErrValidation)

	_, err = svc.CreateSlots(ctx, "2025-12-24", []model.SlotWindow{{StartTime: "10am", EndTime: "11:00"}})
	require.ErrorIs(t, err, booking.ErrValidation)

	_, err = svc.CreateSlots(ctx, "2025-12-24", []model.SlotWindow{{StartTime: "10:00", EndTime: "25:61"}})
	require.ErrorIs(t, err, booking.ErrValidation)
}

func TestListForDateOrdersByStart(t *testing.T) {
	svc, store := newCalendar(t)
	store.AddSlot("2025-12-24", "14:00", "15:00")
	store.AddSlot("2025-12-24", "10:00", "11:00")
	store.AddSlot("2025-12-25", "10:00", "11:00")

	slots, err := svc.ListForDate(context.Background(), "2025-12-24")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, "10:00", slots[0].StartTime)
	require.Equal(t, "14:00", slots[1].StartTime)

	_, err = svc.ListForDate(context.Background(), "not-a-date")
	require.ErrorIs(t, err, booking.ErrValidation)
}

func TestDeleteSlot(t *testing.T) {
	svc, store := newCalendar(t)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")

	require.NoError(t, svc.DeleteSlot(context.Background(), slot.ID))
	require.Nil(t, store.SlotByID(slot.ID))

	err := svc.DeleteSlot(context.Background(), uuid.New())
	require.ErrorIs(t, err, booking.ErrSlotNotFound)
}

func TestDeleteClaimedSlotRefused(t *testing.T) {
	svc, store := newCalendar(t)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")
	resID := uuid.New()
	slot.IsAvailable = false
	slot.ReservationID = &resID

	err := svc.DeleteSlot(context.Background(), slot.ID)
	require.ErrorIs(t, err, booking.ErrSlotClaimed)
	require.NotNil(t, store.SlotByID(slot.ID))
}

func TestToggleBlocked(t *testing.T) {
	svc, store := newCalendar(t)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")

	toggled, err := svc.ToggleBlocked(context.Background(), slot.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsAvailable)

	toggled, err = svc.ToggleBlocked(context.Background(), slot.ID)
	require.NoError(t, err)
	require.True(t, toggled.IsAvailable)

	_, err = svc.ToggleBlocked(context.Background(), uuid.New())
	require.ErrorIs(t, err, booking.ErrSlotNotFound)
}

func TestBlockedSlotStaysListed(t *testing.T) {
	svc, store := newCalendar(t)
	store.AddSlot("2025-12-24", "10:00", "11:00")
	slot := store.AddSlot("2025-12-24", "12:00", "13:00")

	_, err := svc.ToggleBlocked(context.Background(), slot.ID)
	require.NoError(t, err)

	slots, err := svc.ListForDate(context.Background(), "2025-12-24")
	require.NoError(t, err)
	require.Len(t, slots, 2, "blocked slots remain visible on the calendar")
}
