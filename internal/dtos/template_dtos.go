package dtos

import (
	"github.com/google/uuid"
)

type CreateTemplateItemRequest struct {
	Description     string     `json:"description" validate:"required,min=1,max=500"`
	InventoryTypeID *uuid.UUID `json:"inventory_type_id,omitempty"`
	Quantity        *int       `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type CreateTemplateRoomRequest struct {
	Name  string                      `json:"name" validate:"required,min=1,max=100"`
	Items []CreateTemplateItemRequest `json:"items" validate:"dive"`
}

type CreateTemplateRequest struct {
	Name           string                      `json:"name" validate:"required,min=1,max=200"`
	InspectionType string                      `json:"inspection_type" validate:"required,min=1,max=100"`
	Rooms          []CreateTemplateRoomRequest `json:"rooms" validate:"required,min=1,dive"`
	PropertyIDs    []uuid.UUID                 `json:"property_ids,omitempty"`
}

type TemplateItemDTO struct {
	ID              uuid.UUID  `json:"id"`
	Description     string     `json:"description"`
	Position        int        `json:"position"`
	InventoryTypeID *uuid.UUID `json:"inventory_type_id,omitempty"`
	Quantity        *int       `json:"quantity,omitempty"`
}

type TemplateRoomDTO struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Position int               `json:"position"`
	Items    []TemplateItemDTO `json:"items,omitempty"`
}

type TemplateDTO struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	InspectionType string            `json:"inspection_type"`
	Rooms          []TemplateRoomDTO `json:"rooms,omitempty"`
}

type ListTemplatesResponse struct {
	Results []TemplateDTO `json:"results"`
	Total   int           `json:"total"`
}

type ApplyTemplateRequest struct {
	InspectionID   uuid.UUID  `json:"inspection_id" validate:"required"`
	InspectionType string     `json:"inspection_type,omitempty"`
	TemplateID     *uuid.UUID `json:"template_id,omitempty"`
}

// ApplyTemplateResponse reports exactly what landed. RoomsFailed is
// non-empty when some rooms could not be populated; callers must not
// treat that as full success.
type ApplyTemplateResponse struct {
	SubtasksCreated int      `json:"subtasks_created"`
	RoomsApplied    int      `json:"rooms_applied"`
	RoomsFailed     []string `json:"rooms_failed,omitempty"`
}
