// Package bookingtest provides in-memory store and dispatcher fakes for
// exercising the booking services without a database.
package bookingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/camereta/studio-booking/internal/notify"
	"github.com/google/uuid"
)

// Store implements every booking store interface over maps and slices.
// Slot order follows insertion order, standing in for created_at ordering.
type Store struct {
	mu sync.Mutex

	Types        map[string]*model.SessionType
	Clients      map[string]*model.Client
	Reservations map[uuid.UUID]*model.Reservation
	Slots        []*model.Slot

	// ClaimHook, when set, decides ClaimIfFree outcomes before the stored
	// state is consulted. Lets tests simulate a lost claim race.
	ClaimHook func(slotID uuid.UUID) bool
}

func NewStore() *Store {
	return &Store{
		Types:        make(map[string]*model.SessionType),
		Clients:      make(map[string]*model.Client),
		Reservations: make(map[uuid.UUID]*model.Reservation),
	}
}

// AddSessionType seeds a session type and returns it.
func (s *Store) AddSessionType(name string, durationMinutes int) *model.SessionType {
	st := &model.SessionType{
		ID:              uuid.New(),
		Name:            name,
		DurationMinutes: durationMinutes,
		Price:           150,
		Active:          true,
		CreatedAt:       time.Now(),
	}
	s.Types[name] = st
	return st
}

// AddSlot seeds an available slot and returns it.
func (s *Store) AddSlot(date, start, end string) *model.Slot {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		panic(err)
	}
	slot := &model.Slot{
		ID:          uuid.New(),
		Date:        day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
		CreatedAt:   time.Now(),
	}
	s.Slots = append(s.Slots, slot)
	return slot
}

// AddReservation seeds a reservation with joined client and session type.
func (s *Store) AddReservation(st *model.SessionType, startAt time.Time, status model.ReservationStatus) *model.Reservation {
	client := &model.Client{
		ID:    uuid.New(),
		Name:  "Seeded Client",
		Email: "seeded@example.com",
		Phone: "600000000",
	}
	s.Clients[client.Email] = client

	res := &model.Reservation{
		ID:            uuid.New(),
		ClientID:      client.ID,
		SessionTypeID: st.ID,
		StartAt:       startAt,
		Status:        status,
		Client:        client,
		SessionType:   st,
	}
	s.Reservations[res.ID] = res
	return res
}

// SlotByID returns the stored slot or nil.
func (s *Store) SlotByID(id uuid.UUID) *model.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.Slots {
		if slot.ID == id {
			return slot
		}
	}
	return nil
}

// SlotsReferencing returns the slots holding a claim for the reservation.
func (s *Store) SlotsReferencing(id uuid.UUID) []*model.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Slot
	for _, slot := range s.Slots {
		if slot.ReservationID != nil && *slot.ReservationID == id {
			out = append(out, slot)
		}
	}
	return out
}

// SessionTypeStore

func (s *Store) GetByName(_ context.Context, name string) (*model.SessionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Types[name], nil
}

func (s *Store) ListActive(_ context.Context) ([]*model.SessionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var types []*model.SessionType
	for _, st := range s.Types {
		if st.Active {
			types = append(types, st)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

// ClientStore

func (s *Store) UpsertByEmail(_ context.Context, name, email, phone string) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if client, ok := s.Clients[email]; ok {
		return client, nil
	}
	client := &model.Client{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	s.Clients[email] = client
	return client, nil
}

// ReservationStore

func (s *Store) Create(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res.ID = uuid.New()
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	s.Reservations[res.ID] = res
	return nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.Reservations[id]
	if !ok {
		return nil, nil
	}
	return s.joined(res), nil
}

func (s *Store) joined(res *model.Reservation) *model.Reservation {
	out := *res
	if out.Client == nil {
		for _, c := range s.Clients {
			if c.ID == out.ClientID {
				out.Client = c
				break
			}
		}
	}
	if out.SessionType == nil {
		for _, st := range s.Types {
			if st.ID == out.SessionTypeID {
				out.SessionType = st
				break
			}
		}
	}
	return &out
}

func (s *Store) List(_ context.Context, status *model.ReservationStatus) ([]*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Reservation
	for _, res := range s.Reservations {
		if status == nil || res.Status == *status {
			out = append(out, s.joined(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (s *Store) UpdateStatus(_ context.Context, id uuid.UUID, status model.ReservationStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.Reservations[id]
	if !ok {
		return false, nil
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	return true, nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Reservations, id)
	return nil
}

func (s *Store) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, id := range ids {
		if _, ok := s.Reservations[id]; ok {
			delete(s.Reservations, id)
			count++
		}
	}
	return count, nil
}

// SlotStore

func (s *Store) CreateSlot(_ context.Context, slot *model.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	s.Slots = append(s.Slots, slot)
	return nil
}

func (s *Store) CreateBatch(ctx context.Context, date time.Time, windows []model.SlotWindow) ([]*model.Slot, error) {
	slots := make([]*model.Slot, 0, len(windows))
	for _, w := range windows {
		slot := &model.Slot{
			Date:        date,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: true,
		}
		if err := s.CreateSlot(ctx, slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *Store) GetSlotByID(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	return s.SlotByID(id), nil
}

func (s *Store) ListForDate(_ context.Context, date time.Time) ([]*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Slot
	for _, slot := range s.Slots {
		if slot.Date.Equal(date) {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *Store) FindFree(_ context.Context, key model.SlotKey) (*model.Slot, error) {
	date, err := key.DateUTC()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.Slots {
		if slot.Date.Equal(date) && slot.StartTime == key.Start && slot.IsAvailable && slot.ReservationID == nil {
			return slot, nil
		}
	}
	return nil, nil
}

func (s *Store) FindByKey(_ context.Context, key model.SlotKey) (*model.Slot, error) {
	date, err := key.DateUTC()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.Slots {
		if slot.Date.Equal(date) && slot.StartTime == key.Start {
			return slot, nil
		}
	}
	return nil, nil
}

func (s *Store) ClaimIfFree(_ context.Context, slotID, reservationID uuid.UUID) (bool, error) {
	if s.ClaimHook != nil && !s.ClaimHook(slotID) {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.Slots {
		if slot.ID == slotID && slot.IsAvailable && slot.ReservationID == nil {
			slot.IsAvailable = false
			slot.ReservationID = &reservationID
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Claim(_ context.Context, slotID, reservationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.Slots {
		if slot.ID == slotID {
			slot.IsAvailable = false
			slot.ReservationID = &reservationID
			return nil
		}
	}
	return nil
}

func (s *Store) Release(_ context.Context, reservationID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, slot := range s.Slots {
		if slot.ReservationID != nil && *slot.ReservationID == reservationID {
			slot.IsAvailable = true
			slot.ReservationID = nil
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteSlot(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, slot := range s.Slots {
		if slot.ID == id {
			if slot.ReservationID != nil {
				return false, nil
			}
			s.Slots = append(s.Slots[:i], s.Slots[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ToggleBlocked(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.Slots {
		if slot.ID == id {
			slot.IsAvailable = !slot.IsAvailable
			return slot, nil
		}
	}
	return nil, nil
}

// SlotStoreFake is the SlotStore view of a Store. Its Create, GetByID and
// Delete dispatch to the slot variants whose signatures would otherwise
// collide with the reservation methods.
type SlotStoreFake struct{ *Store }

func (f SlotStoreFake) Create(ctx context.Context, slot *model.Slot) error {
	return f.CreateSlot(ctx, slot)
}

func (f SlotStoreFake) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	return f.GetSlotByID(ctx, id)
}

func (f SlotStoreFake) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.DeleteSlot(ctx, id)
}

// SlotStore returns the store viewed as a slot store.
func (s *Store) SlotStore() SlotStoreFake {
	return SlotStoreFake{s}
}

// Dispatcher records the notifications a lifecycle operation attempted.
type Dispatcher struct {
	mu        sync.Mutex
	Created   []notify.Payload
	Confirmed []notify.Payload
	Cancelled []notify.Payload

	// Err, when set, is returned from every call so tests can check that
	// notification failures are swallowed.
	Err error
}

func (d *Dispatcher) ReservationCreated(_ context.Context, p notify.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Created = append(d.Created, p)
	return d.Err
}

func (d *Dispatcher) ReservationConfirmed(_ context.Context, p notify.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Confirmed = append(d.Confirmed, p)
	return d.Err
}

func (d *Dispatcher) ReservationCancelled(_ context.Context, p notify.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Cancelled = append(d.Cancelled, p)
	return d.Err
}
