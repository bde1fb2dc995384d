package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, clinic *model.Clinic) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search, status string) ([]*model.Clinic, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetInClinic(ctx context.Context, clinicID, doctorID uuid.UUID) (*model.Doctor, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetInClinic(ctx context.Context, clinicID, patientID uuid.UUID) (*model.Patient, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *model.Consultation) error
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Consultation, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error
}
