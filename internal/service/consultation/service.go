package consultation

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type ConsultationServicer interface {
	CreateConsultation(ctx context.Context, clinicID, doctorID, patientID uuid.UUID,
		req *model.CreateConsultationRequest) (*model.Consultation, error)
	ListConsultations(ctx context.Context, clinicID uuid.UUID) ([]*model.Consultation, error)
}

type Service struct {
	repo     repository.ConsultationRepository
	clinics  repository.ClinicRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
}

func NewService(repo repository.ConsultationRepository, clinics repository.ClinicRepository,
	doctors repository.DoctorRepository, patients repository.PatientRepository) *Service {
	return &Service{
		repo:     repo,
		clinics:  clinics,
		doctors:  doctors,
		patients: patients,
	}
}

// CreateConsultation requires the clinic to exist, the doctor and patient
// to exist within it, and both to be active. The doctor's status is
// checked before the patient's.
func (s *Service) CreateConsultation(ctx context.Context, clinicID, doctorID, patientID uuid.UUID,
	req *model.CreateConsultationRequest) (*model.Consultation, error) {

	exists, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ParentNotFound("clinic", nil)
	}

	doctor, err := s.doctors.GetInClinic(ctx, clinicID, doctorID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.ParentNotFound("doctor", err)
		}
		return nil, err
	}

	patient, err := s.patients.GetInClinic(ctx, clinicID, patientID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.ParentNotFound("patient", err)
		}
		return nil, err
	}

	if doctor.Status != model.StatusActive {
		return nil, apperrors.EntityInactive("doctor", doctor.Status)
	}
	if patient.Status != model.StatusActive {
		return nil, apperrors.EntityInactive("patient", patient.Status)
	}

	consultation := &model.Consultation{
		ClinicID:         clinicID,
		DoctorID:         doctor.ID,
		PatientID:        patient.ID,
		IsPrimary:        req.IsPrimary,
		ConsultationDate: req.ConsultationDate,
		Status:           req.Status,
	}
	if consultation.Status == "" {
		consultation.Status = model.StatusActive
	}

	if err := s.repo.Create(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *Service) ListConsultations(ctx context.Context, clinicID uuid.UUID) ([]*model.Consultation, error) {
	exists, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ParentNotFound("clinic", nil)
	}
	return s.repo.ListByClinic(ctx, clinicID)
}
