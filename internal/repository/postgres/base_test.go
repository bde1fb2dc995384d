package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

func TestTranslateErrorUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: pqUniqueViolation, Constraint: "doctors_mobile_key"}

	err := translateError(pqErr, "doctor")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDuplicateValue))

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "mobile", appErr.Field)
}

func TestTranslateErrorForeignKeyOnInsert(t *testing.T) {
	pqErr := &pq.Error{Code: pqForeignKeyViolation, Constraint: "doctors_clinic_id_fkey"}

	err := translateError(pqErr, "doctor")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}

func TestTranslateDeleteErrorForeignKey(t *testing.T) {
	pqErr := &pq.Error{Code: pqForeignKeyViolation, Constraint: "doctors_clinic_id_fkey"}

	err := translateDeleteError(pqErr, "clinic")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDependentRecordsExist))
}

func TestTranslateErrorNoRows(t *testing.T) {
	err := translateError(sql.ErrNoRows, "patient")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestTranslateErrorPassesThroughAppErrors(t *testing.T) {
	orig := apperrors.CrossTenantReference("doctor belongs to a different clinic")

	err := translateError(orig, "patient")
	assert.Same(t, error(orig), err)
}

func TestTranslateErrorUnknown(t *testing.T) {
	err := translateError(errors.New("connection reset"), "clinic")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInternal))
}

func TestTranslateErrorNil(t *testing.T) {
	assert.NoError(t, translateError(nil, "clinic"))
}

func TestFieldFromConstraint(t *testing.T) {
	assert.Equal(t, "mobile", fieldFromConstraint("doctors_mobile_key"))
	assert.Equal(t, "full_name", fieldFromConstraint("users_full_name_key"))
	assert.Equal(t, "", fieldFromConstraint("weird"))
}
