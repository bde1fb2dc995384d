package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction. The transaction is
// rolled back on error or panic and committed otherwise, so no entity is
// left half-constructed on any exit path.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Internal(err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// translateError converts store-level failures into the error kinds the
// services surface. Constraint violations reported by the store are
// authoritative; guard pre-checks alone are not sufficient under
// concurrent writes.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return apperrors.DuplicateValue(fieldFromConstraint(pqErr.Constraint), err)
		case pqForeignKeyViolation:
			return apperrors.ParentNotFound(entity+" reference", err)
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(entity, err)
	}

	return apperrors.Internal(err)
}

// translateDeleteError is translateError for DELETE statements, where a
// foreign key violation means dependent rows still reference the entity.
func translateDeleteError(err error, entity string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return apperrors.DependentRecordsExist("cannot delete " + entity + " due to existing related records")
	}
	return translateError(err, entity)
}

// fieldFromConstraint extracts the column from a default postgres
// constraint name, e.g. "doctors_mobile_key" -> "mobile".
func fieldFromConstraint(constraint string) string {
	parts := strings.Split(constraint, "_")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], "_")
}
