package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(100) NOT NULL,
		full_name VARCHAR(100) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS clinics (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '',
		mobile VARCHAR(15) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT clinics_mobile_key UNIQUE (mobile)
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id UUID PRIMARY KEY,
		clinic_id UUID NOT NULL REFERENCES clinics (id),
		name VARCHAR(255) NOT NULL,
		mobile VARCHAR(15) NOT NULL,
		email VARCHAR(100) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '',
		specialization VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT doctors_mobile_key UNIQUE (mobile),
		CONSTRAINT doctors_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		clinic_id UUID NOT NULL REFERENCES clinics (id),
		doctor_id UUID NOT NULL REFERENCES doctors (id),
		name VARCHAR(255) NOT NULL,
		mobile VARCHAR(15) NOT NULL,
		age INTEGER NOT NULL DEFAULT 0,
		gender VARCHAR(100) NOT NULL DEFAULT '',
		doctor_name VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT patients_mobile_key UNIQUE (mobile)
	)`,
	`CREATE TABLE IF NOT EXISTS consultations (
		id UUID PRIMARY KEY,
		clinic_id UUID NOT NULL REFERENCES clinics (id),
		doctor_id UUID NOT NULL REFERENCES doctors (id),
		patient_id UUID NOT NULL REFERENCES patients (id),
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		consultation_date TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		event_type VARCHAR(100) NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		processed_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doctors_clinic_id ON doctors (clinic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_clinic_id ON patients (clinic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_doctor_id ON patients (doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_consultations_clinic_id ON consultations (clinic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_consultations_doctor_id ON consultations (doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
