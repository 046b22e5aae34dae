package models

import (
	"time"

	"github.com/google/uuid"
)

// InspectionTemplate is a named, ordered room/item hierarchy used to
// bulk-generate subtasks for a new inspection of a matching type.
type InspectionTemplate struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	InspectionType string    `json:"inspection_type"`
	CreatedAt      time.Time `json:"created_at"`
}

type TemplateRoom struct {
	ID         uuid.UUID `json:"id"`
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Position   int       `json:"position"`
}

type TemplateItem struct {
	ID              uuid.UUID  `json:"id"`
	RoomID          uuid.UUID  `json:"room_id"`
	Description     string     `json:"description"`
	Position        int        `json:"position"`
	InventoryTypeID *uuid.UUID `json:"inventory_type_id,omitempty"`
	Quantity        *int       `json:"quantity,omitempty"`
}

// PropertyTemplate links a template to a property so the dialog can
// preselect the templates relevant to that property.
type PropertyTemplate struct {
	PropertyID uuid.UUID `json:"property_id"`
	TemplateID uuid.UUID `json:"template_id"`
}
