package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"regimen/domain/core"
	"regimen/domain/tracking"
	"regimen/models"
	"regimen/ports"
)

// InsightsService computes adherence statistics over the trailing intake
// window
type InsightsService struct {
	supplements ports.SupplementRepository
	reminders   ports.ReminderRepository
	intakes     ports.IntakeRepository
	windowDays  int
}

func NewInsightsService(supplements ports.SupplementRepository, reminders ports.ReminderRepository, intakes ports.IntakeRepository, windowDays int) *InsightsService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &InsightsService{
		supplements: supplements,
		reminders:   reminders,
		intakes:     intakes,
		windowDays:  windowDays,
	}
}

// SupplementInsight is the per-supplement intake breakdown, covering the
// active shelf only. Intakes logged against since-archived supplements
// still count toward the daily totals but get no row here.
type SupplementInsight struct {
	SupplementID int64      `json:"supplement_id"`
	Name         string     `json:"name"`
	IntakeCount  int        `json:"intake_count"`
	LastTakenAt  *time.Time `json:"last_taken_at,omitempty"`
}

// InsightsView is the adherence overview payload. Rates are 0..1,
// rounded to two decimals; streaks are whole days. TypicalHour is the
// median UTC hour of day across the window's intake events, absent when
// nothing was logged.
type InsightsView struct {
	Stats         models.TrackingStats `json:"stats"`
	WindowDays    int                  `json:"window_days"`
	DailyAverage  float64              `json:"daily_average"`
	MedianPerDay  float64              `json:"median_per_day"`
	P90PerDay     float64              `json:"p90_per_day"`
	TypicalHour   *int                 `json:"typical_intake_hour,omitempty"`
	CurrentStreak int                  `json:"current_streak_days"`
	LongestStreak int                  `json:"longest_streak_days"`
	Supplements   []SupplementInsight  `json:"supplements"`
	RuntimeMs     int64                `json:"runtime_ms"`
}

// Overview fetches the shelf, the reminders, and the windowed intake log
// concurrently, then derives adherence, streaks, and the per-day dose
// distribution. Days are calendar days in UTC.
func (s *InsightsService) Overview(ctx context.Context, userID core.UserID) (*InsightsView, error) {
	startTime := time.Now()

	var (
		supplements []tracking.Supplement
		reminders   []tracking.Reminder
		events      []tracking.IntakeEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		supplements, err = s.supplements.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load supplements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reminders, err = s.reminders.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load reminders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.intakes.ListSince(gctx, userID, s.windowDays)
		if err != nil {
			return fmt.Errorf("failed to load intake events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &InsightsView{
		WindowDays: s.windowDays,
		Stats: models.TrackingStats{
			TotalSupplements: len(supplements),
			ActiveReminders:  countEnabled(reminders),
			UnscheduledCount: len(tracking.Unscheduled(supplements, reminders)),
		},
	}
	if len(events) > 0 {
		first := events[0].TakenAt
		last := events[len(events)-1].TakenAt
		view.Stats.FirstIntake = &first
		view.Stats.LastIntake = &last

		hours := make([]float64, len(events))
		for i, event := range events {
			hours[i] = float64(event.TakenAt.UTC().Hour())
		}
		if median, err := stats.Median(stats.Float64Data(hours)); err == nil {
			typical := int(math.Round(median))
			view.TypicalHour = &typical
		}
	}

	countsByDay := make(map[time.Time]int, len(events))
	for _, event := range events {
		countsByDay[dayStart(event.TakenAt)]++
	}

	// One entry per window day, oldest first and ending today, so zero
	// days weigh into the distribution too.
	today := dayStart(time.Now())
	perDay := make([]float64, 0, s.windowDays)
	taken := make([]bool, 0, s.windowDays)
	scheduled := make([]bool, 0, s.windowDays)
	for i := s.windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count := countsByDay[day]
		perDay = append(perDay, float64(count))
		taken = append(taken, count > 0)
		scheduled = append(scheduled, anyReminderOn(reminders, day.Weekday()))
	}

	data := stats.Float64Data(perDay)
	if mean, err := stats.Mean(data); err == nil {
		view.DailyAverage = round2(mean)
	}
	if median, err := stats.Median(data); err == nil {
		view.MedianPerDay = round2(median)
	}
	if p90, err := stats.Percentile(data, 90); err == nil {
		view.P90PerDay = round2(p90)
	}

	view.Stats.AdherenceRate = adherenceRate(taken, scheduled)
	view.CurrentStreak, view.LongestStreak = streaks(taken)
	view.Supplements = supplementBreakdown(supplements, events)

	view.RuntimeMs = time.Since(startTime).Milliseconds()
	return view, nil
}

// dayStart truncates a timestamp to its UTC calendar day
func dayStart(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func countEnabled(reminders []tracking.Reminder) int {
	n := 0
	for _, reminder := range reminders {
		if reminder.Enabled {
			n++
		}
	}
	return n
}

func anyReminderOn(reminders []tracking.Reminder, day time.Weekday) bool {
	for _, reminder := range reminders {
		if reminder.Enabled && reminder.Days.On(day) {
			return true
		}
	}
	return false
}

// adherenceRate is taken scheduled days over scheduled days. With no
// enabled reminders there is no schedule to hold the user to, so the rate
// falls back to taken days over the whole window.
func adherenceRate(taken, scheduled []bool) float64 {
	scheduledDays, takenScheduled, takenDays := 0, 0, 0
	for i := range taken {
		if taken[i] {
			takenDays++
		}
		if scheduled[i] {
			scheduledDays++
			if taken[i] {
				takenScheduled++
			}
		}
	}
	if scheduledDays == 0 {
		return round2(float64(takenDays) / float64(len(taken)))
	}
	return round2(float64(takenScheduled) / float64(scheduledDays))
}

// streaks returns the current and longest consecutive-day runs. A day
// with nothing logged yet today does not break the current streak; a
// streak through yesterday still counts.
func streaks(taken []bool) (current, longest int) {
	run := 0
	for _, day := range taken {
		if day {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	current = run
	if len(taken) > 1 && !taken[len(taken)-1] {
		run = 0
		for i := len(taken) - 2; i >= 0 && taken[i]; i-- {
			run++
		}
		current = run
	}
	return current, longest
}

func supplementBreakdown(supplements []tracking.Supplement, events []tracking.IntakeEvent) []SupplementInsight {
	countByID := make(map[int64]int, len(events))
	lastByID := make(map[int64]time.Time, len(events))
	for _, event := range events {
		countByID[event.SupplementID]++
		if event.TakenAt.After(lastByID[event.SupplementID]) {
			lastByID[event.SupplementID] = event.TakenAt
		}
	}

	breakdown := make([]SupplementInsight, 0, len(supplements))
	for _, supplement := range supplements {
		insight := SupplementInsight{
			SupplementID: supplement.ID,
			Name:         supplement.Name,
			IntakeCount:  countByID[supplement.ID],
		}
		if last, ok := lastByID[supplement.ID]; ok {
			insight.LastTakenAt = &last
		}
		breakdown = append(breakdown, insight)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].IntakeCount != breakdown[j].IntakeCount {
			return breakdown[i].IntakeCount > breakdown[j].IntakeCount
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	return breakdown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
