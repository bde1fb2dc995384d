package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity status constants shared by clinics, doctors, patients and
// consultations.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
