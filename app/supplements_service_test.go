package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"regimen/domain/core"
	"regimen/domain/tracking"
	"regimen/internal/errors"
	"regimen/models"
)

var shelfUserID = core.UserID("550e8400-e29b-41d4-a716-446655440000")

func newSupplementsFixture() (*MockSupplementRepository, *MockReminderRepository, *MockIntakeRepository, *SupplementsService) {
	supplements := new(MockSupplementRepository)
	reminders := new(MockReminderRepository)
	intakes := new(MockIntakeRepository)
	return supplements, reminders, intakes, NewSupplementsService(supplements, reminders, intakes)
}

func TestGetShelfDerivesUnscheduled(t *testing.T) {
	supplementsRepo, remindersRepo, _, service := newSupplementsFixture()

	supplements := []tracking.Supplement{
		{ID: 1, UserID: shelfUserID, Name: "Magnesium Glycinate"},
		{ID: 2, UserID: shelfUserID, Name: "Vitamin D3"},
		{ID: 3, UserID: shelfUserID, Name: "Omega-3 Fish Oil"},
	}
	// Covers id 2; id 99 is a stale reference and must be ignored
	reminders := []tracking.Reminder{
		{ID: 10, UserID: shelfUserID, Label: "Morning", At: 510, Days: tracking.WeekdaysEvery, Enabled: true, SupplementIDs: []int64{2, 99}},
	}

	supplementsRepo.On("ListByUser", mock.Anything, shelfUserID).Return(supplements, nil)
	remindersRepo.On("ListByUser", mock.Anything, shelfUserID).Return(reminders, nil)

	view, err := service.GetShelf(context.Background(), shelfUserID)
	require.NoError(t, err)
	assert.Equal(t, supplements, view.Supplements)
	assert.Equal(t, reminders, view.Reminders)
	require.Len(t, view.Unscheduled, 2)
	assert.Equal(t, int64(1), view.Unscheduled[0].ID)
	assert.Equal(t, int64(3), view.Unscheduled[1].ID)
}

func TestGetShelfFailsWhenEitherFetchFails(t *testing.T) {
	supplementsRepo, remindersRepo, _, service := newSupplementsFixture()

	supplementsRepo.On("ListByUser", mock.Anything, shelfUserID).Return(nil, nil)
	remindersRepo.On("ListByUser", mock.Anything, shelfUserID).Return(nil, fmt.Errorf("timeout"))

	view, err := service.GetShelf(context.Background(), shelfUserID)
	require.Error(t, err)
	assert.Nil(t, view)
	assert.Contains(t, err.Error(), "failed to load reminders")
}

func TestAddSupplementRejectsBlankName(t *testing.T) {
	supplementsRepo, _, _, service := newSupplementsFixture()

	_, err := service.AddSupplement(context.Background(), shelfUserID, models.CreateSupplementRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	supplementsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddSupplementTrimsAndStores(t *testing.T) {
	supplementsRepo, _, _, service := newSupplementsFixture()

	supplementsRepo.On("Create", mock.Anything, mock.AnythingOfType("*tracking.Supplement")).Run(func(args mock.Arguments) {
		args.Get(1).(*tracking.Supplement).ID = 7
	}).Return(nil)

	created, err := service.AddSupplement(context.Background(), shelfUserID, models.CreateSupplementRequest{
		Name:     "  Magnesium Glycinate  ",
		Brand:    " NutraWorks ",
		Dosage:   "400 mg",
		Schedule: "with dinner",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, shelfUserID, created.UserID)
	assert.Equal(t, "Magnesium Glycinate", created.Name)
	assert.Equal(t, "NutraWorks", created.Brand)
}

func TestAddReminderDefaultsToEveryDay(t *testing.T) {
	_, remindersRepo, _, service := newSupplementsFixture()

	remindersRepo.On("Create", mock.Anything, mock.AnythingOfType("*tracking.Reminder")).Run(func(args mock.Arguments) {
		args.Get(1).(*tracking.Reminder).ID = 11
	}).Return(nil)

	created, err := service.AddReminder(context.Background(), shelfUserID, models.CreateReminderRequest{
		Label:         "Morning stack",
		At:            "08:30",
		SupplementIDs: []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, tracking.WeekdaysEvery, created.Days)
	assert.True(t, created.Enabled)
	assert.Equal(t, 8, created.At.Hour())
	assert.Equal(t, 30, created.At.Minute())
	assert.Equal(t, []int64{1, 2}, created.SupplementIDs)
}

func TestAddReminderParsesWeekdays(t *testing.T) {
	_, remindersRepo, _, service := newSupplementsFixture()

	remindersRepo.On("Create", mock.Anything, mock.AnythingOfType("*tracking.Reminder")).Return(nil)

	created, err := service.AddReminder(context.Background(), shelfUserID, models.CreateReminderRequest{
		Label: "Weekday evenings",
		At:    "21:00",
		Days:  []string{"Mon", "wed", "FRI"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Days.Count())
	assert.True(t, created.Days.On(time.Monday))
	assert.True(t, created.Days.On(time.Wednesday))
	assert.True(t, created.Days.On(time.Friday))
	assert.False(t, created.Days.On(time.Sunday))
}

func TestAddReminderRejectsBadTime(t *testing.T) {
	_, remindersRepo, _, service := newSupplementsFixture()

	_, err := service.AddReminder(context.Background(), shelfUserID, models.CreateReminderRequest{Label: "Late", At: "25:00"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	remindersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogIntakeRejectsUnknownSupplement(t *testing.T) {
	supplementsRepo, _, intakesRepo, service := newSupplementsFixture()

	supplementsRepo.On("GetByID", mock.Anything, shelfUserID, int64(9)).
		Return(nil, fmt.Errorf("supplement 9: %w", core.ErrSupplementNotFound))

	_, err := service.LogIntake(context.Background(), shelfUserID, models.LogIntakeRequest{SupplementID: 9})
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
	intakesRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestLogIntakeDefaultsTakenAtToNow(t *testing.T) {
	supplementsRepo, _, intakesRepo, service := newSupplementsFixture()

	zinc := &tracking.Supplement{ID: 3, UserID: shelfUserID, Name: "Zinc Picolinate"}
	supplementsRepo.On("GetByID", mock.Anything, shelfUserID, int64(3)).Return(zinc, nil)
	intakesRepo.On("Record", mock.Anything, mock.AnythingOfType("*tracking.IntakeEvent")).Run(func(args mock.Arguments) {
		args.Get(1).(*tracking.IntakeEvent).ID = 21
	}).Return(nil)

	event, err := service.LogIntake(context.Background(), shelfUserID, models.LogIntakeRequest{SupplementID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(21), event.ID)
	assert.Equal(t, int64(3), event.SupplementID)
	assert.WithinDuration(t, time.Now(), event.TakenAt, 2*time.Second)
}

func TestLogIntakeKeepsExplicitTakenAt(t *testing.T) {
	supplementsRepo, _, intakesRepo, service := newSupplementsFixture()

	zinc := &tracking.Supplement{ID: 3, UserID: shelfUserID, Name: "Zinc Picolinate"}
	supplementsRepo.On("GetByID", mock.Anything, shelfUserID, int64(3)).Return(zinc, nil)
	intakesRepo.On("Record", mock.Anything, mock.AnythingOfType("*tracking.IntakeEvent")).Return(nil)

	takenAt := time.Now().Add(-3 * time.Hour)
	event, err := service.LogIntake(context.Background(), shelfUserID, models.LogIntakeRequest{SupplementID: 3, TakenAt: &takenAt})
	require.NoError(t, err)
	assert.True(t, event.TakenAt.Equal(takenAt))
}

func TestArchiveSupplementPropagatesNotFound(t *testing.T) {
	supplementsRepo, _, _, service := newSupplementsFixture()

	supplementsRepo.On("Archive", mock.Anything, shelfUserID, int64(44)).
		Return(fmt.Errorf("supplement 44: %w", core.ErrSupplementNotFound))

	err := service.ArchiveSupplement(context.Background(), shelfUserID, 44)
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}
