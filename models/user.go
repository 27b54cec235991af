package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on this install. Deployments run effectively
// single-user; the migration seeds the default account and the
// X-User-ID header selects others once they exist.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Username  string    `json:"username" db:"username"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TrackingStats summarizes a user's supplement tracking activity
type TrackingStats struct {
	TotalSupplements int        `json:"total_supplements"`
	ActiveReminders  int        `json:"active_reminders"`
	UnscheduledCount int        `json:"unscheduled_count"`
	AdherenceRate    float64    `json:"adherence_rate"`
	FirstIntake      *time.Time `json:"first_intake,omitempty"`
	LastIntake       *time.Time `json:"last_intake,omitempty"`
}
