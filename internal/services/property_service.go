package services

import (
	"context"
	"net/http"

	"github.com/bradfitz/latlong"
	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

type PropertyService struct {
	propRepo repositories.PropertyRepository
}

func NewPropertyService(propRepo repositories.PropertyRepository) *PropertyService {
	return &PropertyService{propRepo: propRepo}
}

func (s *PropertyService) Create(ctx context.Context, managerID uuid.UUID, req *dtos.CreatePropertyRequest) (*models.Property, error) {
	tz := req.TimeZone
	if tz == "" {
		tz = latlong.LookupZoneName(req.Latitude, req.Longitude)
		if tz == "" {
			utils.Logger.Warnf("No timezone found for lat=%f lng=%f, falling back to UTC", req.Latitude, req.Longitude)
			tz = "UTC"
		}
	}

	p := &models.Property{
		ID:        uuid.New(),
		ManagerID: managerID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		TimeZone:  tz,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetOwned loads a property and verifies the caller manages it.
// A property owned by someone else is reported as missing, not
// forbidden, so ids cannot be probed.
func (s *PropertyService) GetOwned(ctx context.Context, managerID, propertyID uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ManagerID != managerID {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Property not found",
			Err:        utils.ErrNotFound,
		}
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	return s.propRepo.ListByManagerID(ctx, managerID)
}

func (s *PropertyService) Update(ctx context.Context, managerID, propertyID uuid.UUID, req *dtos.UpdatePropertyRequest) (*models.Property, error) {
	if _, err := s.GetOwned(ctx, managerID, propertyID); err != nil {
		return nil, err
	}

	err := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		if req.City != nil {
			p.City = *req.City
		}
		if req.State != nil {
			p.State = *req.State
		}
		if req.ZipCode != nil {
			p.ZipCode = *req.ZipCode
		}
		if req.Latitude != nil {
			p.Latitude = *req.Latitude
		}
		if req.Longitude != nil {
			p.Longitude = *req.Longitude
		}
		if req.TimeZone != nil {
			p.TimeZone = *req.TimeZone
		} else if req.Latitude != nil || req.Longitude != nil {
			if tz := latlong.LookupZoneName(p.Latitude, p.Longitude); tz != "" {
				p.TimeZone = tz
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, propertyID)
}
