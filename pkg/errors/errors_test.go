package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("clinic", nil), http.StatusNotFound},
		{"parent not found", ParentNotFound("doctor", nil), http.StatusNotFound},
		{"bad request", BadRequest("bad input", nil), http.StatusBadRequest},
		{"unauthorized", Unauthorized("invalid credentials", nil), http.StatusUnauthorized},
		{"forbidden", Forbidden("insufficient privileges"), http.StatusForbidden},
		{"invalid token", InvalidToken(nil), http.StatusUnauthorized},
		{"missing subject", MissingSubject(), http.StatusUnauthorized},
		{"user not found", UserNotFound("ghost"), http.StatusUnauthorized},
		{"user inactive", UserInactive("dormant"), http.StatusBadRequest},
		{"cross tenant", CrossTenantReference("doctor belongs to a different clinic"), http.StatusBadRequest},
		{"entity inactive", EntityInactive("doctor", "inactive"), http.StatusBadRequest},
		{"dependents exist", DependentRecordsExist("clinic has doctors"), http.StatusBadRequest},
		{"duplicate value", DuplicateValue("mobile", nil), http.StatusBadRequest},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestCodeOf(t *testing.T) {
	err := DuplicateValue("email", nil)
	assert.Equal(t, ErrDuplicateValue, CodeOf(err))
	assert.True(t, IsCode(err, ErrDuplicateValue))
	assert.False(t, IsCode(err, ErrNotFound))

	assert.Equal(t, ErrInternal, CodeOf(errors.New("plain")))
	assert.False(t, IsCode(nil, ErrNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := NotFound("patient", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "patient")
}

func TestDuplicateValueCarriesField(t *testing.T) {
	err := DuplicateValue("mobile", nil)
	assert.Equal(t, "mobile", err.Field)
	assert.Contains(t, err.Error(), "mobile")
}
