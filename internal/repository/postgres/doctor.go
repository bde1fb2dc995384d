package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, clinic_id, name, mobile, email, address, specialization, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.ClinicID,
		doctor.Name,
		doctor.Mobile,
		doctor.Email,
		doctor.Address,
		doctor.Specialization,
		doctor.Status,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	return translateError(err, "doctor")
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, translateError(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetInClinic(ctx context.Context, clinicID, doctorID uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1 AND clinic_id = $2`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, doctorID, clinicID); err != nil {
		return nil, translateError(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE clinic_id = $1 ORDER BY created_at DESC`
	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query, clinicID); err != nil {
		return nil, translateError(err, "doctor")
	}
	return doctors, nil
}

// Update rewrites the doctor row and refreshes the doctor_name snapshot
// on the doctor's patients in the same transaction, so a rename never
// leaves patients pointing at a stale name.
func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, mobile = $2, email = $3, address = $4, specialization = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	doctor.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			doctor.Name,
			doctor.Mobile,
			doctor.Email,
			doctor.Address,
			doctor.Specialization,
			doctor.Status,
			doctor.UpdatedAt,
			doctor.ID,
		)
		if err != nil {
			return translateError(err, "doctor")
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return translateError(err, "doctor")
		}
		if rows == 0 {
			return apperrors.NotFound("doctor", nil)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE patients SET doctor_name = $1, updated_at = $2 WHERE doctor_id = $3`,
			doctor.Name, doctor.UpdatedAt, doctor.ID,
		)
		return translateError(err, "patient")
	})
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM doctors WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateDeleteError(err, "doctor")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "doctor")
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM doctors WHERE clinic_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, clinicID); err != nil {
		return 0, translateError(err, "doctor")
	}
	return count, nil
}
