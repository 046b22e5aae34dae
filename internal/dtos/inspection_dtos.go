package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateInspectionRequest struct {
	PropertyID     uuid.UUID  `json:"property_id" validate:"required"`
	UnitID         *uuid.UUID `json:"unit_id,omitempty"`
	InspectionType string     `json:"inspection_type" validate:"required,min=1,max=100"`
	ScheduledDate  string     `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime  *string    `json:"scheduled_time,omitempty" validate:"omitempty,datetime=15:04"`

	// Recurrence (optional; NONE when empty)
	Frequency    string `json:"frequency,omitempty" validate:"omitempty,oneof=NONE DAILY WEEKDAYS WEEKLY BIWEEKLY MONTHLY"`
	SkipHolidays bool   `json:"skip_holidays,omitempty"`

	// When set, the matching template is applied right after creation.
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
}

type UpdateInspectionRequest struct {
	UnitID         *uuid.UUID `json:"unit_id,omitempty"`
	InspectionType *string    `json:"inspection_type,omitempty" validate:"omitempty,min=1,max=100"`
	ScheduledDate  *string    `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime  *string    `json:"scheduled_time,omitempty" validate:"omitempty,datetime=15:04"`
	AttachmentURL  *string    `json:"attachment_url,omitempty" validate:"omitempty,url"`
}

type InspectionDTO struct {
	ID                 uuid.UUID  `json:"id"`
	PropertyID         uuid.UUID  `json:"property_id"`
	UnitID             *uuid.UUID `json:"unit_id,omitempty"`
	InspectionType     string     `json:"inspection_type"`
	ScheduledDate      string     `json:"scheduled_date"`
	ScheduledTime      *string    `json:"scheduled_time,omitempty"`
	ParentInspectionID *uuid.UUID `json:"parent_inspection_id,omitempty"`
	Frequency          string     `json:"frequency"`
	SkipHolidays       bool       `json:"skip_holidays"`
	Completed          bool       `json:"completed"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	AttachmentURL      *string    `json:"attachment_url,omitempty"`
	Archived           bool       `json:"archived"`
	CreatedAt          time.Time  `json:"created_at"`

	// ApplyResult is present only on create-with-template responses.
	ApplyResult *ApplyTemplateResponse `json:"apply_result,omitempty"`
}

type ListInspectionsResponse struct {
	Results []InspectionDTO `json:"results"`
	Total   int             `json:"total"`
}

// CompleteInspectionsRequest carries the primary inspection plus the
// caller-selected connected siblings. The flag and sibling set come
// through unchanged from the dialog.
type CompleteInspectionsRequest struct {
	InspectionID uuid.UUID   `json:"inspection_id" validate:"required"`
	ConnectedIDs []uuid.UUID `json:"connected_ids,omitempty"`
}

type CompleteInspectionsResponse struct {
	CompletedIDs []uuid.UUID `json:"completed_ids"`
}

type DeleteInspectionsRequest struct {
	InspectionID     uuid.UUID   `json:"inspection_id" validate:"required"`
	ConnectedIDs     []uuid.UUID `json:"connected_ids,omitempty"`
	KeepForAnalytics bool        `json:"keep_for_analytics"`
}

type DeleteInspectionsResponse struct {
	DeletedIDs  []uuid.UUID `json:"deleted_ids,omitempty"`
	ArchivedIDs []uuid.UUID `json:"archived_ids,omitempty"`
}
