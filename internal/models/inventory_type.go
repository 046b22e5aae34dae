package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryType is a free-form category referenced by subtasks and
// template items for quantity tracking.
type InventoryType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
