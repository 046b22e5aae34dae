package dtos

import (
	"github.com/google/uuid"
)

type CascadeDeleteRequest struct {
	Type string    `json:"type" validate:"required,oneof=property unit"`
	ID   uuid.UUID `json:"id" validate:"required"`
}

type CascadeDeleteResponse struct {
	OK      bool                 `json:"ok"`
	Deleted CascadeDeleteCounts  `json:"deleted"`
}

type CascadeDeleteCounts struct {
	Subtasks      int64 `json:"subtasks"`
	Inspections   int64 `json:"inspections"`
	Units         int64 `json:"units"`
	TemplateLinks int64 `json:"template_links"`
}
