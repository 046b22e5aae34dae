package models

import (
	"time"

	"github.com/google/uuid"
)

type InspectionFrequencyType string

const (
	InspectionFreqNone     InspectionFrequencyType = "NONE"
	InspectionFreqDaily    InspectionFrequencyType = "DAILY"
	InspectionFreqWeekdays InspectionFrequencyType = "WEEKDAYS"
	InspectionFreqWeekly   InspectionFrequencyType = "WEEKLY"
	InspectionFreqBiWeekly InspectionFrequencyType = "BIWEEKLY"
	InspectionFreqMonthly  InspectionFrequencyType = "MONTHLY"
)

// Inspection is a scheduled visit to a property or unit. Recurring
// inspections form a series: every occurrence carries the series root
// in ParentInspectionID (the root itself has it nil).
type Inspection struct {
	Versioned

	ID                 uuid.UUID               `json:"id"`
	PropertyID         uuid.UUID               `json:"property_id"`
	UnitID             *uuid.UUID              `json:"unit_id,omitempty"`
	InspectionType     string                  `json:"inspection_type"`
	ScheduledDate      time.Time               `json:"scheduled_date"`
	ScheduledTime      *string                 `json:"scheduled_time,omitempty"`
	ParentInspectionID *uuid.UUID              `json:"parent_inspection_id,omitempty"`
	Frequency          InspectionFrequencyType `json:"frequency"`
	SkipHolidays       bool                    `json:"skip_holidays"`

	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	AttachmentURL *string    `json:"attachment_url,omitempty"`

	// ArchivedAt is set when the inspection is "deleted" but kept for
	// analytics. Archived rows are hidden from lists and calendars.
	ArchivedAt *time.Time `json:"archived_at,omitempty"`

	// RemindedAt marks that the one-shot overdue reminder went out.
	RemindedAt *time.Time `json:"reminded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Inspection) GetID() string { return i.ID.String() }

// SeriesRootID resolves the lineage anchor shared by all occurrences
// of a recurring series.
func (i *Inspection) SeriesRootID() uuid.UUID {
	if i.ParentInspectionID != nil {
		return *i.ParentInspectionID
	}
	return i.ID
}
