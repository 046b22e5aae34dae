package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors an auth user; ID equals the JWT subject.
type Profile struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
