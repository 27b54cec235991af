package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"regimen/domain/core"
	"regimen/domain/tracking"
	"regimen/internal/errors"
	"regimen/models"
	"regimen/ports"
)

// SupplementsService manages the user's supplement shelf, reminders, and
// the intake log
type SupplementsService struct {
	supplements ports.SupplementRepository
	reminders   ports.ReminderRepository
	intakes     ports.IntakeRepository
}

func NewSupplementsService(supplements ports.SupplementRepository, reminders ports.ReminderRepository, intakes ports.IntakeRepository) *SupplementsService {
	return &SupplementsService{
		supplements: supplements,
		reminders:   reminders,
		intakes:     intakes,
	}
}

// ShelfView is the tracking screen payload: the full shelf, every
// reminder, and the derived unscheduled list
type ShelfView struct {
	Supplements []tracking.Supplement `json:"supplements"`
	Reminders   []tracking.Reminder   `json:"reminders"`
	Unscheduled []tracking.Supplement `json:"unscheduled"`
}

// GetShelf loads the shelf and the reminders together and derives which
// supplements no reminder covers. Both fetches must succeed: deriving
// against a missing reminder set would misreport everything as
// unscheduled.
func (s *SupplementsService) GetShelf(ctx context.Context, userID core.UserID) (*ShelfView, error) {
	var (
		supplements []tracking.Supplement
		reminders   []tracking.Reminder
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
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ShelfView{
		Supplements: supplements,
		Reminders:   reminders,
		Unscheduled: tracking.Unscheduled(supplements, reminders),
	}, nil
}

// AddSupplement validates and stores a new shelf item
func (s *SupplementsService) AddSupplement(ctx context.Context, userID core.UserID, req models.CreateSupplementRequest) (*tracking.Supplement, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}

	supplement := &tracking.Supplement{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Brand:    strings.TrimSpace(req.Brand),
		Dosage:   strings.TrimSpace(req.Dosage),
		Schedule: strings.TrimSpace(req.Schedule),
	}
	if err := s.supplements.Create(ctx, supplement); err != nil {
		return nil, fmt.Errorf("failed to create supplement: %w", err)
	}
	return supplement, nil
}

// ArchiveSupplement removes a supplement from the shelf. Reminders keep
// their reference to the archived id; readers treat it as absent.
func (s *SupplementsService) ArchiveSupplement(ctx context.Context, userID core.UserID, id int64) error {
	if err := s.supplements.Archive(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to archive supplement: %w", err)
	}
	return nil
}

// AddReminder validates and stores a new reminder. Referenced supplement
// ids are stored as given, without existence checks: a reminder may
// legally point at ids that are stale or never existed, and every reader
// skips them.
func (s *SupplementsService) AddReminder(ctx context.Context, userID core.UserID, req models.CreateReminderRequest) (*tracking.Reminder, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}
	at, err := core.ParseTimeOfDay(req.At)
	if err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}

	reminder := &tracking.Reminder{
		UserID:        userID,
		Label:         strings.TrimSpace(req.Label),
		At:            at,
		Days:          req.Weekdays(),
		Enabled:       true,
		SupplementIDs: append([]int64{}, req.SupplementIDs...),
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

// RemoveReminder deletes a reminder outright; there is no soft delete for
// reminders
func (s *SupplementsService) RemoveReminder(ctx context.Context, userID core.UserID, id int64) error {
	if err := s.reminders.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

// LogIntake records one taken dose against an existing supplement. The
// supplement must be on the active shelf; TakenAt defaults to now.
func (s *SupplementsService) LogIntake(ctx context.Context, userID core.UserID, req models.LogIntakeRequest) (*tracking.IntakeEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}
	if _, err := s.supplements.GetByID(ctx, userID, req.SupplementID); err != nil {
		return nil, fmt.Errorf("failed to verify supplement: %w", err)
	}

	takenAt := time.Now()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}
	event := &tracking.IntakeEvent{
		UserID:       userID,
		SupplementID: req.SupplementID,
		TakenAt:      takenAt,
	}
	if err := s.intakes.Record(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record intake: %w", err)
	}
	return event, nil
}
