package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/camereta/studio-booking/internal/booking"
	"github.com/camereta/studio-booking/internal/booking/bookingtest"
	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*booking.ReservationService, *bookingtest.Store, *bookingtest.Dispatcher) {
	t.Helper()
	store := bookingtest.NewStore()
	dispatcher := &bookingtest.Dispatcher{}
	svc := booking.NewReservationService(
		store, store, store, store.SlotStore(),
		dispatcher, time.UTC, zap.NewNop(),
	)
	return svc, store, dispatcher
}

func createInput(startAt time.Time) booking.CreateInput {
	return booking.CreateInput{
		Name:            "Maria Puig",
		Email:           "maria@example.com",
		Phone:           "600111222",
		SessionTypeName: "navidad",
		StartAt:         startAt,
	}
}

var christmasTen = time.Date(2025, 12, 24, 10, 0, 0, 0, time.UTC)

func TestCreateClaimsSlot(t *testing.T) {
	svc, store, dispatcher := newService(t)
	store.AddSessionType("navidad", 60)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")

	res, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)
	require.Equal(t, model.ReservationStatusPending, res.Status)
	require.NotNil(t, res.Client)
	require.Equal(t, "maria@example.com", res.Client.Email)

	got := store.SlotByID(slot.ID)
	require.False(t, got.IsAvailable)
	require.NotNil(t, got.ReservationID)
	require.Equal(t, res.ID, *got.ReservationID)

	require.Len(t, dispatcher.Created, 1)
	require.Equal(t, "navidad", dispatcher.Created[0].SessionType)
}

func TestCreateSecondBookingSameTimeFails(t *testing.T) {
	svc, store, _ := newService(t)
	store.AddSessionType("navidad", 60)
	store.AddSlot("2025-12-24", "10:00", "11:00")

	_, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createInput(christmasTen))
	require.ErrorIs(t, err, booking.ErrSlotUnavailable)
	require.Len(t, store.Reservations, 1)
}

func TestCreateNoSlotPublished(t *testing.T) {
	svc, store, dispatcher := newService(t)
	store.AddSessionType("navidad", 60)

	_, err := svc.Create(context.Background(), createInput(christmasTen))
	require.ErrorIs(t, err, booking.ErrSlotUnavailable)
	require.Empty(t, store.Reservations)
	require.Empty(t, dispatcher.Created)
}

func TestCreateUnknownSessionTypeLeavesNoTrace(t *testing.T) {
	svc, store, dispatcher := newService(t)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")

	_, err := svc.Create(context.Background(), createInput(christmasTen))
	require.ErrorIs(t, err, booking.ErrSessionTypeNotFound)

	require.Empty(t, store.Clients)
	require.Empty(t, store.Reservations)
	require.True(t, store.SlotByID(slot.ID).IsAvailable)
	require.Empty(t, dispatcher.Created)
}

func TestCreateReusesClientByEmail(t *testing.T) {
	svc, store, _ := newService(t)
	store.AddSessionType("navidad", 60)
	store.AddSlot("2025-12-24", "10:00", "11:00")
	store.AddSlot("2025-12-24", "11:00", "12:00")

	first, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)

	in := createInput(christmasTen.Add(time.Hour))
	in.Name = "M. Puig Serra"
	second, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, first.Client.ID, second.Client.ID)
	require.Len(t, store.Clients, 1)
	// the stored record keeps its original name
	require.Equal(t, "Maria Puig", second.Client.Name)
}

func TestCreateLostClaimRaceCompensates(t *testing.T) {
	svc, store, _ := newService(t)
	store.AddSessionType("navidad", 60)
	store.AddSlot("2025-12-24", "10:00", "11:00")
	store.ClaimHook = func(uuid.UUID) bool { return false }

	_, err := svc.Create(context.Background(), createInput(christmasTen))
	require.ErrorIs(t, err, booking.ErrSlotUnavailable)
	require.Empty(t, store.Reservations, "losing reservation must be removed")
}

func TestCreateSwallowsNotificationFailure(t *testing.T) {
	svc, store, dispatcher := newService(t)
	store.AddSessionType("navidad", 60)
	store.AddSlot("2025-12-24", "10:00", "11:00")
	dispatcher.Err = context.DeadlineExceeded

	res, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, dispatcher.Created, 1)
}

func TestSetStatusCancelledReleasesSlot(t *testing.T) {
	svc, store, dispatcher := newService(t)
	store.AddSessionType("navidad", 60)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")

	res, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), res.ID, model.ReservationStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, model.ReservationStatusCancelled, updated.Status)

	got := store.SlotByID(slot.ID)
	require.True(t, got.IsAvailable)
	require.Nil(t, got.ReservationID)
	require.Len(t, dispatcher.Cancelled, 1)
}

func TestSetStatusRemovedReleasesWithoutNotification(t *testing.T) {
	svc, store, dispatcher := newService(t)
	store.AddSessionType("navidad", 60)
	store.AddSlot("2025-12-24", "10:00", "11:00")

	res, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), res.ID, model.ReservationStatusRemoved)
	require.NoError(t, err)
	require.Empty(t, store.SlotsReferencing(res.ID))
	require.Empty(t, dispatcher.Cancelled)
}

func TestSetStatusConfirmedSynthesizesMissingSlot(t *testing.T) {
	svc, store, dispatcher := newService(t)
	st := store.AddSessionType("navidad", 60)
	res := store.AddReservation(st, christmasTen, model.ReservationStatusPending)

	updated, err := svc.SetStatus(context.Background(), res.ID, model.ReservationStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, model.ReservationStatusConfirmed, updated.Status)

	claimed := store.SlotsReferencing(res.ID)
	require.Len(t, claimed, 1)
	require.Equal(t, "10:00", claimed[0].StartTime)
	require.Equal(t, "11:00", claimed[0].EndTime, "end time is start plus session duration")
	require.False(t, claimed[0].IsAvailable)
	require.Len(t, dispatcher.Confirmed, 1)
}

func TestSetStatusConfirmedClaimsExistingSlot(t *testing.T) {
	svc, store, _ := newService(t)
	st := store.AddSessionType("navidad", 60)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")
	res := store.AddReservation(st, christmasTen, model.ReservationStatusPending)

	_, err := svc.SetStatus(context.Background(), res.ID, model.ReservationStatusConfirmed)
	require.NoError(t, err)

	got := store.SlotByID(slot.ID)
	require.False(t, got.IsAvailable)
	require.Equal(t, res.ID, *got.ReservationID)
	require.Len(t, store.Slots, 1, "no extra slot is created when one exists")
}

func TestSetStatusConfirmedTwiceHasNoEffect(t *testing.T) {
	svc, store, dispatcher := newService(t)
	st := store.AddSessionType("navidad", 60)
	res := store.AddReservation(st, christmasTen, model.ReservationStatusConfirmed)

	_, err := svc.SetStatus(context.Background(), res.ID, model.ReservationStatusConfirmed)
	require.NoError(t, err)
	require.Empty(t, store.Slots)
	require.Empty(t, dispatcher.Confirmed)
}

func TestConfirmThenCancelRoundTrip(t *testing.T) {
	svc, store, _ := newService(t)
	st := store.AddSessionType("navidad", 60)
	res := store.AddReservation(st, christmasTen, model.ReservationStatusPending)

	_, err := svc.SetStatus(context.Background(), res.ID, model.ReservationStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, store.SlotsReferencing(res.ID), 1)

	_, err = svc.SetStatus(context.Background(), res.ID, model.ReservationStatusCancelled)
	require.NoError(t, err)
	require.Empty(t, store.SlotsReferencing(res.ID))
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	svc, store, _ := newService(t)
	st := store.AddSessionType("navidad", 60)
	res := store.AddReservation(st, christmasTen, model.ReservationStatusPending)

	_, err := svc.SetStatus(context.Background(), res.ID, model.ReservationStatus("archived"))
	require.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestSetStatusUnknownReservation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.SetStatus(context.Background(), uuid.New(), model.ReservationStatusConfirmed)
	require.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestBulkDeleteReleasesSlots(t *testing.T) {
	svc, store, _ := newService(t)
	store.AddSessionType("navidad", 60)
	slot := store.AddSlot("2025-12-24", "10:00", "11:00")

	res, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)

	count, err := svc.BulkDelete(context.Background(), []uuid.UUID{res.ID, uuid.New()})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.Empty(t, store.Reservations)
	got := store.SlotByID(slot.ID)
	require.True(t, got.IsAvailable)
	require.Nil(t, got.ReservationID)
}

func TestListAllOrdersByStartAndFilters(t *testing.T) {
	svc, store, _ := newService(t)
	st := store.AddSessionType("navidad", 60)
	later := store.AddReservation(st, christmasTen.Add(2*time.Hour), model.ReservationStatusPending)
	earlier := store.AddReservation(st, christmasTen, model.ReservationStatusConfirmed)

	all, err := svc.ListAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, earlier.ID, all[0].ID)
	require.Equal(t, later.ID, all[1].ID)

	confirmed := model.ReservationStatusConfirmed
	filtered, err := svc.ListAll(context.Background(), &confirmed)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, earlier.ID, filtered[0].ID)

	bogus := model.ReservationStatus("archived")
	_, err = svc.ListAll(context.Background(), &bogus)
	require.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestCancellationNotificationUsesPreUpdateSnapshot(t *testing.T) {
	svc, store, dispatcher := newService(t)
	store.AddSessionType("navidad", 60)
	store.AddSlot("2025-12-24", "10:00", "11:00")

	res, err := svc.Create(context.Background(), createInput(christmasTen))
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), res.ID, model.ReservationStatusCancelled)
	require.NoError(t, err)

	require.Len(t, dispatcher.Cancelled, 1)
	p := dispatcher.Cancelled[0]
	require.Equal(t, "maria@example.com", p.ClientEmail)
	require.Equal(t, "navidad", p.SessionType)
	require.True(t, p.StartAt.Equal(christmasTen))
}
