package model

import (
	"time"

	"github.com/google/uuid"
)

// Consultation joins a clinic, doctor and patient at a point in time.
// IsPrimary is stored as given; uniqueness of the primary flag per patient
// is not enforced.
type Consultation struct {
	Base
	ClinicID         uuid.UUID `json:"clinic_id" db:"clinic_id"`
	DoctorID         uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID        uuid.UUID `json:"patient_id" db:"patient_id"`
	IsPrimary        bool      `json:"is_primary" db:"is_primary"`
	ConsultationDate time.Time `json:"consultation_date" db:"consultation_date"`
	Status           string    `json:"status" db:"status"`
}

type CreateConsultationRequest struct {
	IsPrimary        bool      `json:"is_primary"`
	ConsultationDate time.Time `json:"consultation_date" binding:"required"`
	Status           string    `json:"status" binding:"omitempty,oneof=active inactive"`
}
