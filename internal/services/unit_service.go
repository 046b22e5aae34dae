package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

type UnitService struct {
	unitRepo    repositories.UnitRepository
	propService *PropertyService
}

func NewUnitService(unitRepo repositories.UnitRepository, propService *PropertyService) *UnitService {
	return &UnitService{unitRepo: unitRepo, propService: propService}
}

func (s *UnitService) Create(ctx context.Context, managerID uuid.UUID, req *dtos.CreateUnitRequest) (*models.Unit, error) {
	if _, err := s.propService.GetOwned(ctx, managerID, req.PropertyID); err != nil {
		return nil, err
	}

	u := &models.Unit{
		ID:         uuid.New(),
		PropertyID: req.PropertyID,
		Name:       req.Name,
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UnitService) GetOwned(ctx context.Context, managerID, unitID uuid.UUID) (*models.Unit, error) {
	u, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Unit not found",
			Err:        utils.ErrNotFound,
		}
	}
	if _, err := s.propService.GetOwned(ctx, managerID, u.PropertyID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UnitService) ListByProperty(ctx context.Context, managerID, propertyID uuid.UUID) ([]*models.Unit, error) {
	if _, err := s.propService.GetOwned(ctx, managerID, propertyID); err != nil {
		return nil, err
	}
	return s.unitRepo.ListByPropertyID(ctx, propertyID)
}

func (s *UnitService) Update(ctx context.Context, managerID, unitID uuid.UUID, req *dtos.UpdateUnitRequest) (*models.Unit, error) {
	if _, err := s.GetOwned(ctx, managerID, unitID); err != nil {
		return nil, err
	}
	err := s.unitRepo.UpdateWithRetry(ctx, unitID, func(u *models.Unit) error {
		u.Name = req.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.unitRepo.GetByID(ctx, unitID)
}
