package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SlotRepository struct {
	db DB
}

func NewSlotRepository(db DB) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, date, start_time, end_time, is_available, reservation_id, created_at`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&slot.ReservationID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a slot and fills its generated fields.
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (date, start_time, end_time, is_available, reservation_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
		slot.ReservationID,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// CreateBatch publishes a list of windows for a date, all initially
// available. Duplicate windows for the same date and time are allowed.
func (r *SlotRepository) CreateBatch(ctx context.Context, date time.Time, windows []model.SlotWindow) ([]*model.Slot, error) {
	slots := make([]*model.Slot, 0, len(windows))
	for _, w := range windows {
		slot := &model.Slot{
			Date:        date,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: true,
		}
		if err := r.Create(ctx, slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// GetByID returns a slot, or nil when it does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE id = $1
	`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// ListForDate returns every slot on a date ordered by start time, each
// joined with its reservation, client and session type when claimed.
func (r *SlotRepository) ListForDate(ctx context.Context, date time.Time) ([]*model.Slot, error) {
	query := `
		SELECT s.id, s.date, s.start_time, s.end_time, s.is_available, s.reservation_id, s.created_at,
			r.id, r.client_id, r.session_type_id, r.start_at, r.comments, r.status, r.created_at, r.updated_at,
			c.id, c.name, c.email, c.phone, c.created_at,
			st.id, st.name, st.description, st.duration_minutes, st.price, st.active, st.created_at
		FROM slots s
		LEFT JOIN reservations r ON r.id = s.reservation_id
		LEFT JOIN clients c ON c.id = r.client_id
		LEFT JOIN session_types st ON st.id = r.session_type_id
		WHERE s.date = $1
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list slots for date: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var (
			slot model.Slot

			resID, resClientID, resTypeID      *uuid.UUID
			resStartAt, resCreated, resUpdated *time.Time
			resComments, resStatus             *string

			cID                   *uuid.UUID
			cName, cEmail, cPhone *string
			cCreated              *time.Time

			stID           *uuid.UUID
			stName, stDesc *string
			stDuration     *int
			stPrice        *float64
			stActive       *bool
			stCreated      *time.Time
		)

		err := rows.Scan(
			&slot.ID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsAvailable,
			&slot.ReservationID,
			&slot.CreatedAt,
			&resID, &resClientID, &resTypeID, &resStartAt, &resComments, &resStatus, &resCreated, &resUpdated,
			&cID, &cName, &cEmail, &cPhone, &cCreated,
			&stID, &stName, &stDesc, &stDuration, &stPrice, &stActive, &stCreated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}

		if resID != nil {
			res := &model.Reservation{
				ID:            *resID,
				ClientID:      *resClientID,
				SessionTypeID: *resTypeID,
				StartAt:       *resStartAt,
				Comments:      resComments,
				Status:        model.ReservationStatus(*resStatus),
				CreatedAt:     *resCreated,
				UpdatedAt:     *resUpdated,
			}
			if cID != nil {
				res.Client = &model.Client{
					ID:        *cID,
					Name:      *cName,
					Email:     *cEmail,
					Phone:     *cPhone,
					CreatedAt: *cCreated,
				}
			}
			if stID != nil {
				res.SessionType = &model.SessionType{
					ID:              *stID,
					Name:            *stName,
					Description:     *stDesc,
					DurationMinutes: *stDuration,
					Price:           *stPrice,
					Active:          *stActive,
					CreatedAt:       *stCreated,
				}
			}
			slot.Reservation = res
		}

		slots = append(slots, &slot)
	}

	return slots, nil
}

// FindFree returns the first free slot matching the key, or nil. Free means
// available and not referenced by any reservation; both conditions are
// required so a claimed slot toggled "available" is never matched.
func (r *SlotRepository) FindFree(ctx context.Context, key model.SlotKey) (*model.Slot, error) {
	date, err := key.DateUTC()
	if err != nil {
		return nil, fmt.Errorf("parse slot date: %w", err)
	}

	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE date = $1
		  AND start_time = $2
		  AND is_available
		  AND reservation_id IS NULL
		ORDER BY created_at
		LIMIT 1
	`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, date, key.Start))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find free slot: %w", err)
	}

	return slot, nil
}

// FindByKey returns the first slot at the key's date and start time in any
// state, or nil. The confirmation path uses it to locate a slot to claim
// regardless of availability.
func (r *SlotRepository) FindByKey(ctx context.Context, key model.SlotKey) (*model.Slot, error) {
	date, err := key.DateUTC()
	if err != nil {
		return nil, fmt.Errorf("parse slot date: %w", err)
	}

	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE date = $1
		  AND start_time = $2
		ORDER BY created_at
		LIMIT 1
	`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, date, key.Start))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot by key: %w", err)
	}

	return slot, nil
}

// ClaimIfFree attaches a reservation to a slot in a single conditional
// update. Exactly one of two racing callers sees true; the loser sees false
// without an error.
func (r *SlotRepository) ClaimIfFree(ctx context.Context, slotID, reservationID uuid.UUID) (bool, error) {
	query := `
		UPDATE slots
		SET is_available = false, reservation_id = $1
		WHERE id = $2
		  AND is_available
		  AND reservation_id IS NULL
	`

	tag, err := r.db.Exec(ctx, query, reservationID, slotID)
	if err != nil {
		return false, fmt.Errorf("claim slot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Claim attaches a reservation to a slot unconditionally, last write wins.
// Only the confirmation path uses it.
func (r *SlotRepository) Claim(ctx context.Context, slotID, reservationID uuid.UUID) error {
	query := `
		UPDATE slots
		SET is_available = false, reservation_id = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, reservationID, slotID)
	if err != nil {
		return fmt.Errorf("claim slot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Release frees every slot referencing the reservation and returns how many
// were released.
func (r *SlotRepository) Release(ctx context.Context, reservationID uuid.UUID) (int64, error) {
	query := `
		UPDATE slots
		SET is_available = true, reservation_id = NULL
		WHERE reservation_id = $1
	`

	tag, err := r.db.Exec(ctx, query, reservationID)
	if err != nil {
		return 0, fmt.Errorf("release slots: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes an unclaimed slot. Returns false when the slot still holds
// a reservation; the condition is part of the statement so a claim racing
// in cannot delete the slot from under its reservation.
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		DELETE FROM slots
		WHERE id = $1
		  AND reservation_id IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ToggleBlocked flips a slot's availability without touching its
// reservation reference.
func (r *SlotRepository) ToggleBlocked(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `
		UPDATE slots
		SET is_available = NOT is_available
		WHERE id = $1
		RETURNING ` + slotColumns + `
	`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("toggle slot: %w", err)
	}

	return slot, nil
}
