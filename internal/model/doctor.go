package model

import "github.com/google/uuid"

// Doctor belongs to exactly one clinic.
type Doctor struct {
	Base
	ClinicID       uuid.UUID `json:"clinic_id" db:"clinic_id"`
	Name           string    `json:"doctor_name" db:"name"`
	Mobile         string    `json:"mobile" db:"mobile"`
	Email          string    `json:"email" db:"email"`
	Address        string    `json:"address" db:"address"`
	Specialization string    `json:"specialization" db:"specialization"`
	Status         string    `json:"status" db:"status"`
}

type CreateDoctorRequest struct {
	Name           string `json:"doctor_name" binding:"required,max=255"`
	Mobile         string `json:"mobile" binding:"required,mobile"`
	Email          string `json:"email" binding:"required,email"`
	Address        string `json:"address" binding:"max=255"`
	Specialization string `json:"specialization" binding:"max=255"`
	Status         string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type UpdateDoctorRequest struct {
	Name           *string `json:"doctor_name" binding:"omitempty,max=255"`
	Mobile         *string `json:"mobile" binding:"omitempty,mobile"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Address        *string `json:"address" binding:"omitempty,max=255"`
	Specialization *string `json:"specialization" binding:"omitempty,max=255"`
	Status         *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
