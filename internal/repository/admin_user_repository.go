package repository

import (
	"context"
	"fmt"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AdminUserRepository struct {
	db DB
}

func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

const adminColumns = `id, email, password_hash, name, role, created_at`

func scanAdmin(row pgx.Row) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.Role,
		&admin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByEmail returns the admin user for an email, or nil.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	query := `
		SELECT ` + adminColumns + `
		FROM admin_users
		WHERE email = $1
	`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}

	return admin, nil
}

// GetByID returns the admin user for an id, or nil.
func (r *AdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	query := `
		SELECT ` + adminColumns + `
		FROM admin_users
		WHERE id = $1
	`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}

	return admin, nil
}

// Upsert creates the admin user or leaves an existing record untouched.
// Used by the seed command.
func (r *AdminUserRepository) Upsert(ctx context.Context, admin *model.AdminUser) (bool, error) {
	query := `
		INSERT INTO admin_users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, admin.Email, admin.PasswordHash, admin.Name, admin.Role)
	if err != nil {
		return false, fmt.Errorf("upsert admin: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
