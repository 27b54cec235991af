package tracking

import (
	"time"

	"regimen/domain/core"
)

// Supplement is one tracked item on the user's shelf. The numeric ID is
// the identity reminders reference; descriptive fields are opaque to the
// scheduling logic.
type Supplement struct {
	ID        int64       `json:"id" db:"id"`
	UserID    core.UserID `json:"user_id" db:"user_id"`
	Name      string      `json:"name" db:"name"`
	Brand     string      `json:"brand" db:"brand"`
	Dosage    string      `json:"dosage" db:"dosage"`
	Schedule  string      `json:"schedule" db:"schedule"`
	Archived  bool        `json:"archived" db:"archived"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// Weekdays is a bitmask of scheduled weekdays, bit 0 = Sunday
type Weekdays uint8

// WeekdaysEvery covers all seven days
const WeekdaysEvery Weekdays = 0x7f

// On reports whether the given weekday is set
func (w Weekdays) On(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

// Count returns the number of scheduled days per week
func (w Weekdays) Count() int {
	n := 0
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w.On(day) {
			n++
		}
	}
	return n
}

// Reminder groups supplements under one scheduled alert. SupplementIDs
// may be empty, and may reference supplements that have since been
// deleted; stale references are ignored everywhere, never an error.
type Reminder struct {
	ID            int64          `json:"id" db:"id"`
	UserID        core.UserID    `json:"user_id" db:"user_id"`
	Label         string         `json:"label" db:"label"`
	At            core.TimeOfDay `json:"at" db:"at_minutes"`
	Days          Weekdays       `json:"days" db:"days"`
	Enabled       bool           `json:"enabled" db:"enabled"`
	SupplementIDs []int64        `json:"supplement_ids"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// IntakeEvent records one logged dose
type IntakeEvent struct {
	ID           int64       `json:"id" db:"id"`
	UserID       core.UserID `json:"user_id" db:"user_id"`
	SupplementID int64       `json:"supplement_id" db:"supplement_id"`
	TakenAt      time.Time   `json:"taken_at" db:"taken_at"`
}
