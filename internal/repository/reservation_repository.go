package repository

import (
	"context"
	"fmt"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationJoinColumns = `
		r.id, r.client_id, r.session_type_id, r.start_at, r.comments, r.status, r.created_at, r.updated_at,
		c.id, c.name, c.email, c.phone, c.created_at,
		st.id, st.name, st.description, st.duration_minutes, st.price, st.active, st.created_at`

func scanReservationJoin(row pgx.Row) (*model.Reservation, error) {
	var (
		res    model.Reservation
		client model.Client
		st     model.SessionType
	)

	err := row.Scan(
		&res.ID,
		&res.ClientID,
		&res.SessionTypeID,
		&res.StartAt,
		&res.Comments,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.CreatedAt,
		&st.ID,
		&st.Name,
		&st.Description,
		&st.DurationMinutes,
		&st.Price,
		&st.Active,
		&st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Client = &client
	res.SessionType = &st
	return &res, nil
}

// Create inserts a new reservation and fills its generated fields.
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (client_id, session_type_id, start_at, comments, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		res.ClientID,
		res.SessionTypeID,
		res.StartAt,
		res.Comments,
		res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

// GetByID returns a reservation joined with its client and session type, or
// nil when it does not exist.
func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	query := `
		SELECT` + reservationJoinColumns + `
		FROM reservations r
		JOIN clients c ON c.id = r.client_id
		JOIN session_types st ON st.id = r.session_type_id
		WHERE r.id = $1
	`

	res, err := scanReservationJoin(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return res, nil
}

// List returns reservations joined with client and session type, ordered by
// start time. A nil status returns every reservation, removed included.
func (r *ReservationRepository) List(ctx context.Context, status *model.ReservationStatus) ([]*model.Reservation, error) {
	query := `
		SELECT` + reservationJoinColumns + `
		FROM reservations r
		JOIN clients c ON c.id = r.client_id
		JOIN session_types st ON st.id = r.session_type_id
		WHERE $1::text IS NULL OR r.status = $1
		ORDER BY r.start_at
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*model.Reservation
	for rows.Next() {
		res, err := scanReservationJoin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

// UpdateStatus persists a status change. Returns false when the reservation
// does not exist.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update reservation status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete hard-deletes a single reservation.
func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM reservations
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	return nil
}

// DeleteByIDs hard-deletes the given reservations and returns how many rows
// were removed.
func (r *ReservationRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
		DELETE FROM reservations
		WHERE id = ANY($1)
	`

	tag, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete reservations: %w", err)
	}

	return tag.RowsAffected(), nil
}
