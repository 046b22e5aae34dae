package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/housecheck/inspections-service/internal/config"
	"github.com/housecheck/inspections-service/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldCreateOccurrence(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	root := func(freq models.InspectionFrequencyType, skipHolidays bool) *models.Inspection {
		return &models.Inspection{
			ID:            uuid.New(),
			ScheduledDate: day(2026, 9, 1),
			Frequency:     freq,
			SkipHolidays:  skipHolidays,
		}
	}

	cases := []struct {
		name string
		root *models.Inspection
		date time.Time
		want bool
	}{
		{"root date never regenerates", root(models.InspectionFreqDaily, false), day(2026, 9, 1), false},
		{"daily next day", root(models.InspectionFreqDaily, false), day(2026, 9, 2), true},
		{"weekdays on saturday", root(models.InspectionFreqWeekdays, false), day(2026, 9, 5), false},
		{"weekdays on friday", root(models.InspectionFreqWeekdays, false), day(2026, 9, 4), true},
		{"weekly same weekday", root(models.InspectionFreqWeekly, false), day(2026, 9, 8), true},
		{"weekly wrong weekday", root(models.InspectionFreqWeekly, false), day(2026, 9, 9), false},
		{"biweekly one week later", root(models.InspectionFreqBiWeekly, false), day(2026, 9, 8), false},
		{"biweekly two weeks later", root(models.InspectionFreqBiWeekly, false), day(2026, 9, 15), true},
		{"monthly same day", root(models.InspectionFreqMonthly, false), day(2026, 10, 1), true},
		{"monthly other day", root(models.InspectionFreqMonthly, false), day(2026, 10, 2), false},
		{"none never recurs", root(models.InspectionFreqNone, false), day(2026, 9, 2), false},
		// 2026-09-07 is Labor Day.
		{"holiday skipped", root(models.InspectionFreqDaily, true), day(2026, 9, 7), false},
		{"holiday kept without flag", root(models.InspectionFreqDaily, false), day(2026, 9, 7), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ShouldCreateOccurrence(tc.root, tc.date))
		})
	}
}

func newSchedulerTestEnv(t *testing.T) (*SchedulerService, *fakeInspectionRepo, *fakeSubtaskRepo, *fakePropertyRepo, *fakeProfileRepo) {
	t.Helper()

	inspRepo := &fakeInspectionRepo{}
	subtaskRepo := &fakeSubtaskRepo{}
	propRepo := &fakePropertyRepo{}
	profileRepo := &fakeProfileRepo{}

	// Credentials absent: the notifier logs instead of sending.
	notifier := NewNotificationService(&config.Config{})
	profiles := NewProfileService(profileRepo)

	svc := NewSchedulerService(inspRepo, subtaskRepo, propRepo, profiles, notifier)
	return svc, inspRepo, subtaskRepo, propRepo, profileRepo
}

func TestDailyMaintenanceCreatesOccurrencesAndCopiesChecklist(t *testing.T) {
	svc, inspRepo, subtaskRepo, propRepo, _ := newSchedulerTestEnv(t)
	ctx := context.Background()

	propID := uuid.New()
	require.NoError(t, propRepo.Create(ctx, &models.Property{
		ID: propID, ManagerID: uuid.New(), TimeZone: "America/Chicago",
	}))

	// A daily series rooted far enough in the past that every seeded
	// day qualifies.
	root := &models.Inspection{
		ID:             uuid.New(),
		PropertyID:     propID,
		InspectionType: "ROUTINE",
		ScheduledDate:  day(2020, 1, 1),
		Frequency:      models.InspectionFreqDaily,
	}
	require.NoError(t, inspRepo.Create(ctx, root))

	anchor := uuid.New()
	require.NoError(t, subtaskRepo.Create(ctx, &models.Subtask{
		ID:                   uuid.New(),
		InspectionID:         root.ID,
		OriginalInspectionID: anchor,
		Description:          "Walk the halls",
		Status:               models.SubtaskStatusDone,
	}))

	require.NoError(t, svc.RunDailyOccurrenceMaintenance(ctx))

	var occurrences []*models.Inspection
	for _, row := range inspRepo.rows {
		if row.ParentInspectionID != nil {
			occurrences = append(occurrences, row)
			require.Equal(t, root.ID, *row.ParentInspectionID)
			require.Equal(t, "ROUTINE", row.InspectionType)
		}
	}
	require.NotEmpty(t, occurrences)

	// Each occurrence got a fresh PENDING copy keeping the anchor.
	for _, occ := range occurrences {
		copies, err := subtaskRepo.ListByInspectionID(ctx, occ.ID)
		require.NoError(t, err)
		require.Len(t, copies, 1)
		require.Equal(t, anchor, copies[0].OriginalInspectionID)
		require.Equal(t, models.SubtaskStatusPending, copies[0].Status)
	}

	// Re-running must not duplicate anything.
	before := len(inspRepo.rows)
	subtasksBefore := len(subtaskRepo.rows)
	require.NoError(t, svc.RunDailyOccurrenceMaintenance(ctx))
	require.Equal(t, before, len(inspRepo.rows))
	require.Equal(t, subtasksBefore, len(subtaskRepo.rows))
}

func TestOverdueSweepRemindsOnce(t *testing.T) {
	svc, inspRepo, _, propRepo, profileRepo := newSchedulerTestEnv(t)
	ctx := context.Background()

	managerID := uuid.New()
	propID := uuid.New()
	require.NoError(t, propRepo.Create(ctx, &models.Property{
		ID: propID, ManagerID: managerID, TimeZone: "UTC",
	}))
	require.NoError(t, profileRepo.Upsert(ctx, &models.Profile{
		ID: managerID, FullName: "Dana Demo", Email: "dana@housecheck.app", Phone: "+15005550100",
	}))

	overdue := &models.Inspection{
		ID:             uuid.New(),
		PropertyID:     propID,
		InspectionType: "ROUTINE",
		ScheduledDate:  time.Now().UTC().AddDate(0, 0, -3),
	}
	fresh := &models.Inspection{
		ID:             uuid.New(),
		PropertyID:     propID,
		InspectionType: "ROUTINE",
		ScheduledDate:  time.Now().UTC().AddDate(0, 0, 3),
	}
	require.NoError(t, inspRepo.Create(ctx, overdue))
	require.NoError(t, inspRepo.Create(ctx, fresh))

	require.NoError(t, svc.RunOverdueSweep(ctx))

	stored, err := inspRepo.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RemindedAt)

	untouched, err := inspRepo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.Nil(t, untouched.RemindedAt)

	// The second sweep finds nothing left to remind.
	list, err := inspRepo.ListOverdue(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Empty(t, list)
}
