package booking

import (
	"context"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/google/uuid"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests use in-memory fakes.

type SessionTypeStore interface {
	GetByName(ctx context.Context, name string) (*model.SessionType, error)
	ListActive(ctx context.Context) ([]*model.SessionType, error)
}

type ClientStore interface {
	UpsertByEmail(ctx context.Context, name, email, phone string) (*model.Client, error)
}

type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	List(ctx context.Context, status *model.ReservationStatus) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type SlotStore interface {
	Create(ctx context.Context, slot *model.Slot) error
	CreateBatch(ctx context.Context, date time.Time, windows []model.SlotWindow) ([]*model.Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	ListForDate(ctx context.Context, date time.Time) ([]*model.Slot, error)
	FindFree(ctx context.Context, key model.SlotKey) (*model.Slot, error)
	FindByKey(ctx context.Context, key model.SlotKey) (*model.Slot, error)
	ClaimIfFree(ctx context.Context, slotID, reservationID uuid.UUID) (bool, error)
	Claim(ctx context.Context, slotID, reservationID uuid.UUID) error
	Release(ctx context.Context, reservationID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ToggleBlocked(ctx context.Context, id uuid.UUID) (*model.Slot, error)
}
