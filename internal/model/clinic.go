package model

// Clinic is the top-level entity owning doctors and patients.
type Clinic struct {
	Base
	Name    string `json:"clinic_name" db:"name"`
	Address string `json:"address" db:"address"`
	Mobile  string `json:"mobile" db:"mobile"`
	Status  string `json:"status" db:"status"`
}

type CreateClinicRequest struct {
	Name    string `json:"clinic_name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=255"`
	Mobile  string `json:"mobile" binding:"required,mobile"`
	Status  string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateClinicRequest carries an explicit partial update; nil fields are
// left untouched.
type UpdateClinicRequest struct {
	Name    *string `json:"clinic_name" binding:"omitempty,max=100"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Mobile  *string `json:"mobile" binding:"omitempty,mobile"`
	Status  *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
