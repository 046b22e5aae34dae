package dtos

import (
	"github.com/google/uuid"
)

// UpsertProfileRequest lets a signed-in user register or refresh the
// profile row behind their JWT subject.
type UpsertProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
}

type ProfileDTO struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
}

type ListProfilesResponse struct {
	Results []ProfileDTO `json:"results"`
	Total   int          `json:"total"`
}
