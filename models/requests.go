package models

import (
	"fmt"
	"strings"
	"time"

	"regimen/domain/core"
	"regimen/domain/tracking"
)

const maxNameLength = 120

// CreateSupplementRequest is the write payload for adding a supplement
type CreateSupplementRequest struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Dosage   string `json:"dosage"`
	Schedule string `json:"schedule"`
}

// Validate checks the request fields
func (r CreateSupplementRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > maxNameLength {
		return fmt.Errorf("name exceeds %d characters", maxNameLength)
	}
	return nil
}

// weekdayNames maps request day tokens to weekday bits, bit 0 = Sunday
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// CreateReminderRequest is the write payload for adding a reminder.
// SupplementIDs may be empty: a reminder that schedules nothing is legal
// and simply leaves every supplement on the unscheduled shelf.
type CreateReminderRequest struct {
	Label         string   `json:"label"`
	At            string   `json:"at"`   // "HH:MM"
	Days          []string `json:"days"` // "mon".."sun"; empty means every day
	SupplementIDs []int64  `json:"supplement_ids"`
}

// Validate checks the request fields
func (r CreateReminderRequest) Validate() error {
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("label is required")
	}
	if _, err := core.ParseTimeOfDay(r.At); err != nil {
		return err
	}
	for _, day := range r.Days {
		if _, ok := weekdayNames[strings.ToLower(day)]; !ok {
			return fmt.Errorf("unknown weekday %q", day)
		}
	}
	return nil
}

// Weekdays converts the day tokens to a bitmask; empty means every day
func (r CreateReminderRequest) Weekdays() tracking.Weekdays {
	if len(r.Days) == 0 {
		return tracking.WeekdaysEvery
	}
	var mask tracking.Weekdays
	for _, day := range r.Days {
		if wd, ok := weekdayNames[strings.ToLower(day)]; ok {
			mask |= 1 << uint(wd)
		}
	}
	return mask
}

// LogIntakeRequest is the write payload for recording a taken dose
type LogIntakeRequest struct {
	SupplementID int64      `json:"supplement_id"`
	TakenAt      *time.Time `json:"taken_at,omitempty"` // defaults to now
}

// Validate checks the request fields
func (r LogIntakeRequest) Validate() error {
	if r.SupplementID <= 0 {
		return fmt.Errorf("supplement_id is required")
	}
	if r.TakenAt != nil && r.TakenAt.After(time.Now().Add(time.Minute)) {
		return fmt.Errorf("taken_at cannot be in the future")
	}
	return nil
}
