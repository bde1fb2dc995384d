package model

import "github.com/google/uuid"

// Patient belongs to exactly one clinic and one doctor within it.
// DoctorName is denormalized from the doctor row at create/update time.
type Patient struct {
	Base
	ClinicID   uuid.UUID `json:"clinic_id" db:"clinic_id"`
	DoctorID   uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Name       string    `json:"patient_name" db:"name"`
	Mobile     string    `json:"mobile" db:"mobile"`
	Age        int       `json:"age" db:"age"`
	Gender     string    `json:"gender" db:"gender"`
	DoctorName string    `json:"doctor_name" db:"doctor_name"`
	Status     string    `json:"status" db:"status"`
}

type CreatePatientRequest struct {
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	Name     string `json:"patient_name" binding:"required,max=255"`
	Mobile   string `json:"mobile" binding:"required,mobile"`
	Age      int    `json:"age" binding:"gte=0,lte=150"`
	Gender   string `json:"gender" binding:"max=100"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type UpdatePatientRequest struct {
	DoctorID *string `json:"doctor_id" binding:"omitempty,uuid"`
	Name     *string `json:"patient_name" binding:"omitempty,max=255"`
	Mobile   *string `json:"mobile" binding:"omitempty,mobile"`
	Age      *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender   *string `json:"gender" binding:"omitempty,max=100"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
