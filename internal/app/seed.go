package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

// Fixed ids so re-seeding is idempotent and local JWTs can be minted
// against a known manager.
var (
	seedManagerID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedPropertyID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedUnitAID     = uuid.MustParse("33333333-3333-3333-3333-333333333331")
	seedUnitBID     = uuid.MustParse("33333333-3333-3333-3333-333333333332")
	seedTemplateID  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	seedInventoryID = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	seedRootInspID  = uuid.MustParse("66666666-6666-6666-6666-666666666666")
)

// SeedTestData loads a small demo dataset for local development.
// Every insert tolerates the row already existing.
func SeedTestData(
	ctx context.Context,
	propRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	inspRepo repositories.InspectionRepository,
	subtaskRepo repositories.SubtaskRepository,
	tmplRepo repositories.TemplateRepository,
	invRepo repositories.InventoryTypeRepository,
	profileRepo repositories.ProfileRepository,
) error {
	utils.Logger.Info("Seeding test data...")

	if err := profileRepo.Upsert(ctx, &models.Profile{
		ID:       seedManagerID,
		FullName: "Dana Demo",
		Email:    "dana@housecheck.app",
		Phone:    "+15005550100",
	}); err != nil {
		return err
	}

	err := propRepo.Create(ctx, &models.Property{
		ID:        seedPropertyID,
		ManagerID: seedManagerID,
		Name:      "Maple Court Apartments",
		Address:   "128 Maple Ct",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "78704",
		TimeZone:  "America/Chicago",
		Latitude:  30.2500,
		Longitude: -97.7500,
	})
	if err != nil && !isUniqueViolation(err) {
		return err
	}

	for _, u := range []*models.Unit{
		{ID: seedUnitAID, PropertyID: seedPropertyID, Name: "Unit 1A"},
		{ID: seedUnitBID, PropertyID: seedPropertyID, Name: "Unit 2B"},
	} {
		if err := unitRepo.Create(ctx, u); err != nil && !isUniqueViolation(err) {
			return err
		}
	}

	if err := invRepo.Create(ctx, &models.InventoryType{
		ID:   seedInventoryID,
		Name: "Smoke detector battery",
	}); err != nil && !isUniqueViolation(err) {
		return err
	}

	if err := seedTemplate(ctx, tmplRepo); err != nil {
		return err
	}

	return seedRecurringInspection(ctx, inspRepo, subtaskRepo)
}

func seedTemplate(ctx context.Context, tmplRepo repositories.TemplateRepository) error {
	err := tmplRepo.Create(ctx, &models.InspectionTemplate{
		ID:             seedTemplateID,
		Name:           "Standard move-out",
		InspectionType: "MOVE_OUT",
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil // rooms and items were seeded with it
		}
		return err
	}

	rooms := []struct {
		name  string
		items []string
	}{
		{"Kitchen", []string{"Check appliances", "Inspect under sink for leaks"}},
		{"Bathroom", []string{"Check caulking", "Test exhaust fan"}},
		{"Bedroom", []string{"Inspect walls and carpet", "Test smoke detector"}},
	}
	for pos, room := range rooms {
		r := &models.TemplateRoom{
			ID:         uuid.New(),
			TemplateID: seedTemplateID,
			Name:       room.name,
			Position:   pos,
		}
		if err := tmplRepo.CreateRoom(ctx, r); err != nil {
			return err
		}
		for itemPos, desc := range room.items {
			item := &models.TemplateItem{
				ID:          uuid.New(),
				RoomID:      r.ID,
				Description: desc,
				Position:    itemPos,
			}
			if err := tmplRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
	}
	return tmplRepo.LinkProperty(ctx, seedPropertyID, seedTemplateID)
}

func seedRecurringInspection(
	ctx context.Context,
	inspRepo repositories.InspectionRepository,
	subtaskRepo repositories.SubtaskRepository,
) error {
	now := time.Now().UTC()
	root := &models.Inspection{
		ID:             seedRootInspID,
		PropertyID:     seedPropertyID,
		UnitID:         &seedUnitAID,
		InspectionType: "ROUTINE",
		ScheduledDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Frequency:      models.InspectionFreqWeekly,
		SkipHolidays:   true,
	}
	err := inspRepo.Create(ctx, root)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}

	return subtaskRepo.Create(ctx, &models.Subtask{
		ID:                   uuid.New(),
		InspectionID:         root.ID,
		OriginalInspectionID: root.ID,
		Description:          "Walk all common areas",
		Status:               models.SubtaskStatusPending,
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
