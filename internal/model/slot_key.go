package model

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// SlotKey identifies a bookable window: a calendar date plus a wall-clock
// start time, both in the studio timezone. Slots are matched by comparing
// these two strings field-wise, never by timestamp arithmetic, so every
// caller must decompose timestamps through SlotKeyFor with the same
// location. A mismatch does not error, it silently finds no slot.
type SlotKey struct {
	Date  string // YYYY-MM-DD
	Start string // HH:MM
}

// SlotKeyFor decomposes a timestamp into the slot key for the given studio
// timezone.
func SlotKeyFor(t time.Time, loc *time.Location) SlotKey {
	local := t.In(loc)
	return SlotKey{
		Date:  local.Format(DateLayout),
		Start: local.Format(TimeLayout),
	}
}

// DateUTC returns the key's date as a UTC-midnight timestamp, the form slot
// dates are stored in.
func (k SlotKey) DateUTC() (time.Time, error) {
	return time.Parse(DateLayout, k.Date)
}

// EndTimeFor returns the HH:MM wall-clock end of a session starting at t
// and running for the given number of minutes.
func EndTimeFor(t time.Time, loc *time.Location, durationMinutes int) string {
	return t.In(loc).Add(time.Duration(durationMinutes) * time.Minute).Format(TimeLayout)
}
