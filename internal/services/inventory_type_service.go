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

type InventoryTypeService struct {
	invRepo repositories.InventoryTypeRepository
}

func NewInventoryTypeService(invRepo repositories.InventoryTypeRepository) *InventoryTypeService {
	return &InventoryTypeService{invRepo: invRepo}
}

func (s *InventoryTypeService) Create(ctx context.Context, req *dtos.CreateInventoryTypeRequest) (*models.InventoryType, error) {
	it := &models.InventoryType{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.invRepo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InventoryTypeService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryType, error) {
	it, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Inventory type not found",
			Err:        utils.ErrNotFound,
		}
	}
	return it, nil
}

func (s *InventoryTypeService) List(ctx context.Context) ([]*models.InventoryType, error) {
	return s.invRepo.List(ctx)
}

func (s *InventoryTypeService) Update(ctx context.Context, id uuid.UUID, req *dtos.UpdateInventoryTypeRequest) (*models.InventoryType, error) {
	it, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Name = req.Name
	if err := s.invRepo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InventoryTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.invRepo.Delete(ctx, id)
}
