package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (
			id, name, address, mobile, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`
	if clinic.ID == uuid.Nil {
		clinic.ID = uuid.New()
	}
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.Address,
		clinic.Mobile,
		clinic.Status,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	)
	return translateError(err, "clinic")
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, address, mobile, status, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, translateError(err, "clinic")
	}
	return &clinic, nil
}

func (r *clinicRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clinics WHERE id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, translateError(err, "clinic")
	}
	return exists, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, address = $2, mobile = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	clinic.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.Address,
		clinic.Mobile,
		clinic.Status,
		clinic.UpdatedAt,
		clinic.ID,
	)
	if err != nil {
		return translateError(err, "clinic")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "clinic")
	}
	if rows == 0 {
		return apperrors.NotFound("clinic", nil)
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clinics WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateDeleteError(err, "clinic")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "clinic")
	}
	if rows == 0 {
		return apperrors.NotFound("clinic", nil)
	}
	return nil
}

func (r *clinicRepository) List(ctx context.Context, search, status string) ([]*model.Clinic, error) {
	query := `
		SELECT id, name, address, mobile, status, created_at, updated_at
		FROM clinics
		WHERE (COALESCE($1, '') = '' OR name ILIKE '%' || $1 || '%')
		AND (COALESCE($2, '') = '' OR status = $2)
		ORDER BY created_at DESC
	`
	clinics := []*model.Clinic{}
	if err := r.db.SelectContext(ctx, &clinics, query, search, status); err != nil {
		return nil, translateError(err, "clinic")
	}
	return clinics, nil
}
