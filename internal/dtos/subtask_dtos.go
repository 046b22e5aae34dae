package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateSubtaskRequest struct {
	InspectionID    uuid.UUID   `json:"inspection_id" validate:"required"`
	Description     string      `json:"description" validate:"required,min=1,max=500"`
	AssignedUserIDs []uuid.UUID `json:"assigned_user_ids,omitempty"`
	AttachmentURL   *string     `json:"attachment_url,omitempty" validate:"omitempty,url"`
	InventoryTypeID *uuid.UUID  `json:"inventory_type_id,omitempty"`
	Quantity        *int        `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type UpdateSubtaskRequest struct {
	Description     *string    `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	AttachmentURL   *string    `json:"attachment_url,omitempty" validate:"omitempty,url"`
	InventoryTypeID *uuid.UUID `json:"inventory_type_id,omitempty"`
	Quantity        *int       `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type AssignSubtaskRequest struct {
	AssignedUserIDs []uuid.UUID `json:"assigned_user_ids" validate:"required"`
}

type SubtaskDTO struct {
	ID                   uuid.UUID   `json:"id"`
	InspectionID         uuid.UUID   `json:"inspection_id"`
	OriginalInspectionID uuid.UUID   `json:"original_inspection_id"`
	Description          string      `json:"description"`
	AssignedUserIDs      []uuid.UUID `json:"assigned_user_ids,omitempty"`
	AssignedUsers        []ProfileDTO `json:"assigned_users,omitempty"`
	Completed            bool        `json:"completed"`
	Status               string      `json:"status"`
	AttachmentURL        *string     `json:"attachment_url,omitempty"`
	InventoryTypeID      *uuid.UUID  `json:"inventory_type_id,omitempty"`
	Quantity             *int        `json:"quantity,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
}

type ListSubtasksResponse struct {
	Results []SubtaskDTO `json:"results"`
	Total   int          `json:"total"`
}
