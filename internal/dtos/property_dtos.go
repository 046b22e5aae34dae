package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Address   string  `json:"address" validate:"required,min=1,max=300"`
	City      string  `json:"city" validate:"max=100"`
	State     string  `json:"state" validate:"max=50"`
	ZipCode   string  `json:"zip_code" validate:"max=20"`
	TimeZone  string  `json:"time_zone" validate:"omitempty,timezone"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type UpdatePropertyRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,min=1,max=300"`
	City      *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	State     *string  `json:"state,omitempty" validate:"omitempty,max=50"`
	ZipCode   *string  `json:"zip_code,omitempty" validate:"omitempty,max=20"`
	TimeZone  *string  `json:"time_zone,omitempty" validate:"omitempty,timezone"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type PropertyDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	TimeZone  string    `json:"time_zone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

type ListPropertiesResponse struct {
	Results []PropertyDTO `json:"results"`
	Total   int           `json:"total"`
}
