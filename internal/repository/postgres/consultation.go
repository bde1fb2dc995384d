package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
)

type consultationRepository struct {
	BaseRepository
}

func NewConsultationRepository(base BaseRepository) repository.ConsultationRepository {
	return &consultationRepository{base}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	query := `
		INSERT INTO consultations (
			id, clinic_id, doctor_id, patient_id, is_primary, consultation_date, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`
	if consultation.ID == uuid.Nil {
		consultation.ID = uuid.New()
	}
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.ClinicID,
		consultation.DoctorID,
		consultation.PatientID,
		consultation.IsPrimary,
		consultation.ConsultationDate,
		consultation.Status,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	return translateError(err, "consultation")
}

func (r *consultationRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Consultation, error) {
	query := `SELECT * FROM consultations WHERE clinic_id = $1 ORDER BY consultation_date DESC`
	consultations := []*model.Consultation{}
	if err := r.db.SelectContext(ctx, &consultations, query, clinicID); err != nil {
		return nil, translateError(err, "consultation")
	}
	return consultations, nil
}

func (r *consultationRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM consultations WHERE doctor_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, doctorID); err != nil {
		return 0, translateError(err, "consultation")
	}
	return count, nil
}
