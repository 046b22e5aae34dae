package models

import (
	"time"

	"github.com/google/uuid"
)

type SubtaskStatusType string

const (
	SubtaskStatusPending    SubtaskStatusType = "PENDING"
	SubtaskStatusInProgress SubtaskStatusType = "IN_PROGRESS"
	SubtaskStatusDone       SubtaskStatusType = "DONE"
)

// Subtask is a checklist item attached to an inspection.
// OriginalInspectionID anchors copies of this subtask across a
// recurring series back to the occurrence they were first created on.
type Subtask struct {
	Versioned

	ID                   uuid.UUID         `json:"id"`
	InspectionID         uuid.UUID         `json:"inspection_id"`
	OriginalInspectionID uuid.UUID         `json:"original_inspection_id"`
	Description          string            `json:"description"`
	AssignedUserIDs      []uuid.UUID       `json:"assigned_user_ids,omitempty"`
	Completed            bool              `json:"completed"`
	Status               SubtaskStatusType `json:"status"`
	AttachmentURL        *string           `json:"attachment_url,omitempty"`
	InventoryTypeID      *uuid.UUID        `json:"inventory_type_id,omitempty"`
	Quantity             *int              `json:"quantity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subtask) GetID() string { return s.ID.String() }
