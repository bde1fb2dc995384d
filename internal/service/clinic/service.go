package clinic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type ClinicServicer interface {
	CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	UpdateClinic(ctx context.Context, id uuid.UUID, req *model.UpdateClinicRequest) (*model.Clinic, error)
	DeleteClinic(ctx context.Context, id uuid.UUID) error
	ListClinics(ctx context.Context, search, status string) ([]*model.Clinic, error)
}

type Service struct {
	repo     repository.ClinicRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
}

func NewService(repo repository.ClinicRepository, doctors repository.DoctorRepository,
	patients repository.PatientRepository) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		patients: patients,
	}
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	clinic := &model.Clinic{
		Name:    req.Name,
		Address: req.Address,
		Mobile:  req.Mobile,
		Status:  req.Status,
	}
	if clinic.Status == "" {
		clinic.Status = model.StatusActive
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateClinic(ctx context.Context, id uuid.UUID, req *model.UpdateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Mobile != nil {
		clinic.Mobile = *req.Mobile
	}
	if req.Status != nil {
		clinic.Status = *req.Status
	}

	if err := s.repo.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

// DeleteClinic refuses to remove a clinic that still owns doctors or
// patients. The count pre-checks are advisory; the store's foreign key
// constraints remain the final arbiter under concurrent writes.
func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("clinic", nil)
	}

	doctorCount, err := s.doctors.CountByClinic(ctx, id)
	if err != nil {
		return err
	}
	if doctorCount > 0 {
		return apperrors.DependentRecordsExist(
			fmt.Sprintf("cannot delete clinic, it has %d doctor(s)", doctorCount))
	}

	patientCount, err := s.patients.CountByClinic(ctx, id)
	if err != nil {
		return err
	}
	if patientCount > 0 {
		return apperrors.DependentRecordsExist(
			fmt.Sprintf("cannot delete clinic, it has %d patient(s)", patientCount))
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListClinics(ctx context.Context, search, status string) ([]*model.Clinic, error) {
	return s.repo.List(ctx, search, status)
}
