package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

// CascadeDeleteService removes a property or unit together with every
// dependent row. The whole cascade runs in one transaction: either all
// of it lands or none of it does, so a failure partway through can
// never leave orphaned inspections or subtasks behind.
type CascadeDeleteService struct {
	pool *pgxpool.Pool
}

func NewCascadeDeleteService(pool *pgxpool.Pool) *CascadeDeleteService {
	return &CascadeDeleteService{pool: pool}
}

func (s *CascadeDeleteService) DeleteProperty(ctx context.Context, managerID, propertyID uuid.UUID) (*dtos.CascadeDeleteCounts, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	propRepo := repositories.NewPropertyRepository(tx)
	inspRepo := repositories.NewInspectionRepository(tx)
	subtaskRepo := repositories.NewSubtaskRepository(tx)
	unitRepo := repositories.NewUnitRepository(tx)
	tmplRepo := repositories.NewTemplateRepository(tx)

	prop, err := propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.ManagerID != managerID {
		return nil, cascadeTargetNotFoundErr("Property")
	}

	inspectionIDs, err := inspRepo.ListIDsByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	counts := &dtos.CascadeDeleteCounts{}
	if counts.Subtasks, err = subtaskRepo.DeleteByInspectionIDs(ctx, inspectionIDs); err != nil {
		return nil, cascadeFailedErr(err)
	}
	if counts.Inspections, err = inspRepo.DeleteByIDs(ctx, inspectionIDs); err != nil {
		return nil, cascadeFailedErr(err)
	}
	if counts.Units, err = unitRepo.DeleteByPropertyID(ctx, propertyID); err != nil {
		return nil, cascadeFailedErr(err)
	}
	if counts.TemplateLinks, err = tmplRepo.DeletePropertyLinks(ctx, propertyID); err != nil {
		return nil, cascadeFailedErr(err)
	}
	if err := propRepo.Delete(ctx, propertyID); err != nil {
		return nil, cascadeFailedErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, cascadeFailedErr(err)
	}

	utils.Logger.Infof("Cascade deleted property %s: %d inspections, %d subtasks, %d units",
		propertyID, counts.Inspections, counts.Subtasks, counts.Units)
	return counts, nil
}

func (s *CascadeDeleteService) DeleteUnit(ctx context.Context, managerID, unitID uuid.UUID) (*dtos.CascadeDeleteCounts, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	propRepo := repositories.NewPropertyRepository(tx)
	inspRepo := repositories.NewInspectionRepository(tx)
	subtaskRepo := repositories.NewSubtaskRepository(tx)
	unitRepo := repositories.NewUnitRepository(tx)

	unit, err := unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, cascadeTargetNotFoundErr("Unit")
	}
	prop, err := propRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.ManagerID != managerID {
		return nil, cascadeTargetNotFoundErr("Unit")
	}

	inspectionIDs, err := inspRepo.ListIDsByUnitID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	counts := &dtos.CascadeDeleteCounts{}
	if counts.Subtasks, err = subtaskRepo.DeleteByInspectionIDs(ctx, inspectionIDs); err != nil {
		return nil, cascadeFailedErr(err)
	}
	if counts.Inspections, err = inspRepo.DeleteByIDs(ctx, inspectionIDs); err != nil {
		return nil, cascadeFailedErr(err)
	}
	if err := unitRepo.Delete(ctx, unitID); err != nil {
		return nil, cascadeFailedErr(err)
	}
	counts.Units = 1

	if err := tx.Commit(ctx); err != nil {
		return nil, cascadeFailedErr(err)
	}

	utils.Logger.Infof("Cascade deleted unit %s: %d inspections, %d subtasks",
		unitID, counts.Inspections, counts.Subtasks)
	return counts, nil
}

func cascadeTargetNotFoundErr(kind string) error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    kind + " not found",
		Err:        utils.ErrNotFound,
	}
}

func cascadeFailedErr(err error) error {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeCascadeFailed,
		Message:    "Cascade delete failed, no changes were applied",
		Err:        err,
	}
}
