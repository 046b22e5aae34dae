package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/constants"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

// SchedulerService owns the cron-driven maintenance: materializing
// upcoming occurrences of recurring inspections and sending one-shot
// overdue reminders.
type SchedulerService struct {
	inspRepo    repositories.InspectionRepository
	subtaskRepo repositories.SubtaskRepository
	propRepo    repositories.PropertyRepository
	profiles    *ProfileService
	notifier    *NotificationService
}

func NewSchedulerService(
	inspRepo repositories.InspectionRepository,
	subtaskRepo repositories.SubtaskRepository,
	propRepo repositories.PropertyRepository,
	profiles *ProfileService,
	notifier *NotificationService,
) *SchedulerService {
	return &SchedulerService{
		inspRepo:    inspRepo,
		subtaskRepo: subtaskRepo,
		propRepo:    propRepo,
		profiles:    profiles,
		notifier:    notifier,
	}
}

/* ---------- occurrence generation ---------- */

// RunDailyOccurrenceMaintenance walks every recurring series and fills
// in occurrences for the next few days, evaluated in each property's
// local timezone. Inserts are idempotent: re-running never duplicates
// an occurrence, and checklist copies only happen on a fresh insert.
func (s *SchedulerService) RunDailyOccurrenceMaintenance(ctx context.Context) error {
	utils.Logger.Debug("Running occurrence maintenance...")

	roots, err := s.inspRepo.ListSeriesRoots(ctx)
	if err != nil {
		return err
	}

	locByProperty := map[uuid.UUID]*time.Location{}
	created := 0

	for _, root := range roots {
		loc, ok := locByProperty[root.PropertyID]
		if !ok {
			loc = s.propertyLocation(ctx, root.PropertyID)
			locByProperty[root.PropertyID] = loc
		}

		now := time.Now().In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		for offset := 0; offset <= constants.DaysToSeedAhead; offset++ {
			date := today.AddDate(0, 0, offset)
			if !ShouldCreateOccurrence(root, date) {
				continue
			}
			n, err := s.createOccurrence(ctx, root, date)
			if err != nil {
				utils.Logger.WithError(err).Warnf("Failed to create occurrence of %s on %s",
					root.ID, date.Format("2006-01-02"))
				continue
			}
			created += n
		}
	}

	if created > 0 {
		utils.Logger.Infof("Occurrence maintenance created %d inspections", created)
	}
	return nil
}

func (s *SchedulerService) propertyLocation(ctx context.Context, propertyID uuid.UUID) *time.Location {
	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil || prop == nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(prop.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *SchedulerService) createOccurrence(ctx context.Context, root *models.Inspection, date time.Time) (int, error) {
	parentID := root.SeriesRootID()
	occurrence := &models.Inspection{
		ID:                 uuid.New(),
		PropertyID:         root.PropertyID,
		UnitID:             root.UnitID,
		InspectionType:     root.InspectionType,
		ScheduledDate:      date,
		ScheduledTime:      root.ScheduledTime,
		ParentInspectionID: &parentID,
		Frequency:          root.Frequency,
		SkipHolidays:       root.SkipHolidays,
	}

	inserted, err := s.inspRepo.CreateIfNotExists(ctx, occurrence)
	if err != nil {
		return 0, err
	}
	if !inserted {
		return 0, nil
	}

	// Copy the root's checklist onto the new occurrence. Each copy
	// keeps the lineage anchor of the subtask it came from.
	rootSubtasks, err := s.subtaskRepo.ListByInspectionID(ctx, root.ID)
	if err != nil {
		return 1, err
	}
	for _, src := range rootSubtasks {
		copyTask := &models.Subtask{
			ID:                   uuid.New(),
			InspectionID:         occurrence.ID,
			OriginalInspectionID: src.OriginalInspectionID,
			Description:          src.Description,
			AssignedUserIDs:      src.AssignedUserIDs,
			Status:               models.SubtaskStatusPending,
			InventoryTypeID:      src.InventoryTypeID,
			Quantity:             src.Quantity,
		}
		if err := s.subtaskRepo.Create(ctx, copyTask); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to copy subtask %s onto occurrence %s", src.ID, occurrence.ID)
		}
	}
	return 1, nil
}

// ShouldCreateOccurrence decides whether a recurring series produces
// an occurrence on the given date. Dates are compared at day
// granularity; the root's own date never regenerates.
func ShouldCreateOccurrence(root *models.Inspection, date time.Time) bool {
	rootDate := time.Date(root.ScheduledDate.Year(), root.ScheduledDate.Month(), root.ScheduledDate.Day(), 0, 0, 0, 0, time.UTC)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if !date.After(rootDate) {
		return false
	}
	if root.SkipHolidays && utils.IsUSFedHoliday(date) {
		return false
	}

	switch root.Frequency {
	case models.InspectionFreqDaily:
		return true
	case models.InspectionFreqWeekdays:
		wd := date.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case models.InspectionFreqWeekly:
		return date.Weekday() == rootDate.Weekday()
	case models.InspectionFreqBiWeekly:
		if date.Weekday() != rootDate.Weekday() {
			return false
		}
		days := int(date.Sub(rootDate).Hours() / 24)
		return days%14 == 0
	case models.InspectionFreqMonthly:
		return date.Day() == rootDate.Day()
	default:
		return false
	}
}

/* ---------- overdue reminders ---------- */

// RunOverdueSweep reminds managers about inspections past their
// scheduled date. Each inspection is reminded at most once.
func (s *SchedulerService) RunOverdueSweep(ctx context.Context) error {
	utils.Logger.Debug("Running overdue sweep...")

	cutoff := time.Now().UTC().Add(-constants.OverdueGrace)
	overdue, err := s.inspRepo.ListOverdue(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, insp := range overdue {
		prop, err := s.propRepo.GetByID(ctx, insp.PropertyID)
		if err != nil || prop == nil {
			continue
		}
		manager, err := s.profiles.GetByID(ctx, prop.ManagerID)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Failed to load manager profile for property %s", prop.ID)
			continue
		}
		if manager != nil {
			s.notifier.NotifyOverdue(insp, prop, manager)
		}
		if err := s.inspRepo.MarkReminded(ctx, insp.ID); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to mark inspection %s reminded", insp.ID)
		}
	}

	if len(overdue) > 0 {
		utils.Logger.Infof("Overdue sweep reminded %d inspections", len(overdue))
	}
	return nil
}
