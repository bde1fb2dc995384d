package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type PatientServicer interface {
	CreatePatient(ctx context.Context, clinicID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, clinicID, patientID uuid.UUID) (*model.Patient, error)
	ListPatients(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error)
	UpdatePatient(ctx context.Context, clinicID, patientID uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, clinicID, patientID uuid.UUID) error
}

type Service struct {
	repo    repository.PatientRepository
	clinics repository.ClinicRepository
	doctors repository.DoctorRepository
}

func NewService(repo repository.PatientRepository, clinics repository.ClinicRepository,
	doctors repository.DoctorRepository) *Service {
	return &Service{
		repo:    repo,
		clinics: clinics,
		doctors: doctors,
	}
}

// CreatePatient requires the clinic to exist and the doctor to exist in
// that same clinic. A doctor belonging to another clinic is a cross-tenant
// reference, not a missing parent.
func (s *Service) CreatePatient(ctx context.Context, clinicID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error) {
	exists, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ParentNotFound("clinic", nil)
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid doctor ID", err)
	}

	doctor, err := s.lookupClinicDoctor(ctx, clinicID, doctorID)
	if err != nil {
		return nil, err
	}

	patient := &model.Patient{
		ClinicID:   clinicID,
		DoctorID:   doctor.ID,
		Name:       req.Name,
		Mobile:     req.Mobile,
		Age:        req.Age,
		Gender:     req.Gender,
		DoctorName: doctor.Name,
		Status:     req.Status,
	}
	if patient.Status == "" {
		patient.Status = model.StatusActive
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, clinicID, patientID uuid.UUID) (*model.Patient, error) {
	return s.repo.GetInClinic(ctx, clinicID, patientID)
}

func (s *Service) ListPatients(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	exists, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ParentNotFound("clinic", nil)
	}
	return s.repo.ListByClinic(ctx, clinicID)
}

func (s *Service) UpdatePatient(ctx context.Context, clinicID, patientID uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.GetInClinic(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}

	if req.DoctorID != nil {
		doctorID, err := uuid.Parse(*req.DoctorID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid doctor ID", err)
		}
		doctor, err := s.lookupClinicDoctor(ctx, clinicID, doctorID)
		if err != nil {
			return nil, err
		}
		patient.DoctorID = doctor.ID
		patient.DoctorName = doctor.Name
	}
	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Mobile != nil {
		patient.Mobile = *req.Mobile
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Status != nil {
		patient.Status = *req.Status
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, clinicID, patientID uuid.UUID) error {
	patient, err := s.repo.GetInClinic(ctx, clinicID, patientID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, patient.ID)
}

// lookupClinicDoctor distinguishes a doctor that does not exist at all
// from one that exists under a different clinic.
func (s *Service) lookupClinicDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.ParentNotFound("doctor", err)
		}
		return nil, err
	}
	if doctor.ClinicID != clinicID {
		return nil, apperrors.CrossTenantReference("doctor belongs to a different clinic")
	}
	return doctor, nil
}
