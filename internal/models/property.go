package models

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	ManagerID uuid.UUID `json:"manager_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	TimeZone  string    `json:"time_zone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Property) GetID() string { return p.ID.String() }
