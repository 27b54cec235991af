package core

import (
	"fmt"
	"time"
)

// Window is a half-open time interval [StartsAt, EndsAt) used for deal
// activation and similar scheduling checks.
type Window struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// NewWindow creates a window from start and end times
func NewWindow(start, end time.Time) Window {
	return Window{StartsAt: start, EndsAt: end}
}

// Contains reports whether now falls inside the window
func (w Window) Contains(now time.Time) bool {
	return !now.Before(w.StartsAt) && now.Before(w.EndsAt)
}

// IsValid reports whether the window is well-formed
func (w Window) IsValid() bool {
	return !w.StartsAt.IsZero() && !w.EndsAt.IsZero() && w.StartsAt.Before(w.EndsAt)
}

// TimeOfDay is a clock time without a date, stored as minutes after midnight
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" into a TimeOfDay
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Hour returns the hour component (0-23)
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59)
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
