package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type DoctorServicer interface {
	CreateDoctor(ctx context.Context, clinicID uuid.UUID, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*model.Doctor, error)
	ListDoctors(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
	UpdateDoctor(ctx context.Context, clinicID, doctorID uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) error
}

type Service struct {
	repo          repository.DoctorRepository
	clinics       repository.ClinicRepository
	patients      repository.PatientRepository
	consultations repository.ConsultationRepository
}

func NewService(repo repository.DoctorRepository, clinics repository.ClinicRepository,
	patients repository.PatientRepository, consultations repository.ConsultationRepository) *Service {
	return &Service{
		repo:          repo,
		clinics:       clinics,
		patients:      patients,
		consultations: consultations,
	}
}

// CreateDoctor requires the owning clinic to exist before insert; a
// concurrent clinic delete is still caught by the store's foreign key.
func (s *Service) CreateDoctor(ctx context.Context, clinicID uuid.UUID, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	exists, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ParentNotFound("clinic", nil)
	}

	doctor := &model.Doctor{
		ClinicID:       clinicID,
		Name:           req.Name,
		Mobile:         req.Mobile,
		Email:          req.Email,
		Address:        req.Address,
		Specialization: req.Specialization,
		Status:         req.Status,
	}
	if doctor.Status == "" {
		doctor.Status = model.StatusActive
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*model.Doctor, error) {
	return s.repo.GetInClinic(ctx, clinicID, doctorID)
}

func (s *Service) ListDoctors(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	exists, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ParentNotFound("clinic", nil)
	}
	return s.repo.ListByClinic(ctx, clinicID)
}

func (s *Service) UpdateDoctor(ctx context.Context, clinicID, doctorID uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.GetInClinic(ctx, clinicID, doctorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Mobile != nil {
		doctor.Mobile = *req.Mobile
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.Address != nil {
		doctor.Address = *req.Address
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Status != nil {
		doctor.Status = *req.Status
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// DeleteDoctor refuses to remove a doctor who still has patients or any
// consultation history.
func (s *Service) DeleteDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) error {
	doctor, err := s.repo.GetInClinic(ctx, clinicID, doctorID)
	if err != nil {
		return err
	}

	patientCount, err := s.patients.CountByDoctor(ctx, doctor.ID)
	if err != nil {
		return err
	}
	if patientCount > 0 {
		return apperrors.DependentRecordsExist(
			fmt.Sprintf("cannot delete doctor, they have %d patient(s)", patientCount))
	}

	consultationCount, err := s.consultations.CountByDoctor(ctx, doctor.ID)
	if err != nil {
		return err
	}
	if consultationCount > 0 {
		return apperrors.DependentRecordsExist(
			fmt.Sprintf("cannot delete doctor, they have %d consultation(s) in history", consultationCount))
	}

	return s.repo.Delete(ctx, doctor.ID)
}
