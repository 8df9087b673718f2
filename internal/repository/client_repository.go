package repository

import (
	"context"
	"fmt"

	"github.com/camereta/studio-booking/internal/model"
)

type ClientRepository struct {
	db DB
}

func NewClientRepository(db DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// UpsertByEmail resolves the client for an email address, creating the
// record on first contact. An existing record wins: the conflict update is
// a no-op that only exists so RETURNING yields the stored row, so a repeat
// booking with a different name keeps the original name.
func (r *ClientRepository) UpsertByEmail(ctx context.Context, name, email, phone string) (*model.Client, error) {
	query := `
		INSERT INTO clients (name, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, name, email, phone, created_at
	`

	var client model.Client
	err := r.db.QueryRow(ctx, query, name, email, phone).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("upsert client by email: %w", err)
	}

	return &client, nil
}
