package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateUnitRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Name       string    `json:"name" validate:"required,min=1,max=100"`
}

type UpdateUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UnitDTO struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListUnitsResponse struct {
	Results []UnitDTO `json:"results"`
	Total   int       `json:"total"`
}
