package repository

import (
	"context"
	"fmt"

	"github.com/camereta/studio-booking/internal/model"
)

type SessionTypeRepository struct {
	db DB
}

func NewSessionTypeRepository(db DB) *SessionTypeRepository {
	return &SessionTypeRepository{db: db}
}

// GetByName looks up a session type by its unique name. Returns nil when no
// such type exists.
func (r *SessionTypeRepository) GetByName(ctx context.Context, name string) (*model.SessionType, error) {
	query := `
		SELECT id, name, description, duration_minutes, price, active, created_at
		FROM session_types
		WHERE name = $1
	`

	var st model.SessionType
	err := r.db.QueryRow(ctx, query, name).Scan(
		&st.ID,
		&st.Name,
		&st.Description,
		&st.DurationMinutes,
		&st.Price,
		&st.Active,
		&st.CreatedAt,
	)

	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session type by name: %w", err)
	}

	return &st, nil
}

// Upsert creates a session type or leaves an existing one untouched. Used
// by the seed command; session types are read-only at runtime.
func (r *SessionTypeRepository) Upsert(ctx context.Context, st *model.SessionType) (bool, error) {
	query := `
		INSERT INTO session_types (name, description, duration_minutes, price, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, st.Name, st.Description, st.DurationMinutes, st.Price, st.Active)
	if err != nil {
		return false, fmt.Errorf("upsert session type: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListActive returns the active session types ordered by name.
func (r *SessionTypeRepository) ListActive(ctx context.Context) ([]*model.SessionType, error) {
	query := `
		SELECT id, name, description, duration_minutes, price, active, created_at
		FROM session_types
		WHERE active
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list session types: %w", err)
	}
	defer rows.Close()

	var types []*model.SessionType
	for rows.Next() {
		var st model.SessionType
		err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Description,
			&st.DurationMinutes,
			&st.Price,
			&st.Active,
			&st.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session type: %w", err)
		}
		types = append(types, &st)
	}

	return types, nil
}
