package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, clinic_id, doctor_id, name, mobile, age, gender, doctor_name, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.ClinicID,
		patient.DoctorID,
		patient.Name,
		patient.Mobile,
		patient.Age,
		patient.Gender,
		patient.DoctorName,
		patient.Status,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	return translateError(err, "patient")
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, translateError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetInClinic(ctx context.Context, clinicID, patientID uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1 AND clinic_id = $2`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, patientID, clinicID); err != nil {
		return nil, translateError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE clinic_id = $1 ORDER BY created_at DESC`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, clinicID); err != nil {
		return nil, translateError(err, "patient")
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET doctor_id = $1, name = $2, mobile = $3, age = $4, gender = $5, doctor_name = $6, status = $7, updated_at = $8
		WHERE id = $9
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.DoctorID,
		patient.Name,
		patient.Mobile,
		patient.Age,
		patient.Gender,
		patient.DoctorName,
		patient.Status,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return translateError(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "patient")
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateDeleteError(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "patient")
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM patients WHERE clinic_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, clinicID); err != nil {
		return 0, translateError(err, "patient")
	}
	return count, nil
}

func (r *patientRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM patients WHERE doctor_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, doctorID); err != nil {
		return 0, translateError(err, "patient")
	}
	return count, nil
}
