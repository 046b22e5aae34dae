package dtos

import (
	"github.com/google/uuid"
)

type CreateInventoryTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateInventoryTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type InventoryTypeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ListInventoryTypesResponse struct {
	Results []InventoryTypeDTO `json:"results"`
	Total   int                `json:"total"`
}
