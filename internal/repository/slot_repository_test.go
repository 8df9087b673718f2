package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/camereta/studio-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newSlotRepo(t *testing.T) (*repository.SlotRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return repository.NewSlotRepository(mock), mock
}

func slotRow(id uuid.UUID) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "date", "start_time", "end_time", "is_available", "reservation_id", "created_at",
	}).AddRow(
		id,
		time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		"10:00",
		"11:00",
		true,
		nil,
		time.Now(),
	)
}

func TestClaimIfFreeWinsRace(t *testing.T) {
	repo, mock := newSlotRepo(t)
	slotID, resID := uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE slots").
		WithArgs(resID, slotID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	claimed, err := repo.ClaimIfFree(context.Background(), slotID, resID)
	require.NoError(t, err)
	require.True(t, claimed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimIfFreeLosesRace(t *testing.T) {
	repo, mock := newSlotRepo(t)
	slotID, resID := uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE slots").
		WithArgs(resID, slotID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	claimed, err := repo.ClaimIfFree(context.Background(), slotID, resID)
	require.NoError(t, err)
	require.False(t, claimed, "a claimed slot is reported lost, not as an error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFreeNoMatchIsNil(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM slots").
		WithArgs(time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), "10:00").
		WillReturnError(pgx.ErrNoRows)

	slot, err := repo.FindFree(context.Background(), model.SlotKey{Date: "2025-12-24", Start: "10:00"})
	require.NoError(t, err)
	require.Nil(t, slot)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFreeReturnsSlot(t *testing.T) {
	repo, mock := newSlotRepo(t)
	slotID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM slots").
		WithArgs(time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), "10:00").
		WillReturnRows(slotRow(slotID))

	slot, err := repo.FindFree(context.Background(), model.SlotKey{Date: "2025-12-24", Start: "10:00"})
	require.NoError(t, err)
	require.NotNil(t, slot)
	require.Equal(t, slotID, slot.ID)
	require.Equal(t, "10:00", slot.StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFreeRejectsBadDate(t *testing.T) {
	repo, _ := newSlotRepo(t)

	_, err := repo.FindFree(context.Background(), model.SlotKey{Date: "24/12/2025", Start: "10:00"})
	require.Error(t, err)
}

func TestReleaseReportsCount(t *testing.T) {
	repo, mock := newSlotRepo(t)
	resID := uuid.New()

	mock.ExpectExec("UPDATE slots").
		WithArgs(resID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	count, err := repo.Release(context.Background(), resID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRefusesClaimedSlot(t *testing.T) {
	repo, mock := newSlotRepo(t)
	slotID := uuid.New()

	mock.ExpectExec("DELETE FROM slots").
		WithArgs(slotID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), slotID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissingIsNil(t *testing.T) {
	repo, mock := newSlotRepo(t)
	slotID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM slots").
		WithArgs(slotID).
		WillReturnError(pgx.ErrNoRows)

	slot, err := repo.GetByID(context.Background(), slotID)
	require.NoError(t, err)
	require.Nil(t, slot)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleBlockedMissingIsNil(t *testing.T) {
	repo, mock := newSlotRepo(t)
	slotID := uuid.New()

	mock.ExpectQuery("UPDATE slots").
		WithArgs(slotID).
		WillReturnError(pgx.ErrNoRows)

	slot, err := repo.ToggleBlocked(context.Background(), slotID)
	require.NoError(t, err)
	require.Nil(t, slot)
	require.NoError(t, mock.ExpectationsWereMet())
}
