package clinic

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository/repositorytest"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type fixture struct {
	svc      *Service
	clinics  *repositorytest.ClinicStore
	doctors  *repositorytest.DoctorStore
	patients *repositorytest.PatientStore
}

func newFixture() *fixture {
	clinics := repositorytest.NewClinicStore()
	doctors := repositorytest.NewDoctorStore()
	patients := repositorytest.NewPatientStore()
	return &fixture{
		svc:      NewService(clinics, doctors, patients),
		clinics:  clinics,
		doctors:  doctors,
		patients: patients,
	}
}

func (f *fixture) createClinic(t *testing.T) *model.Clinic {
	t.Helper()
	clinic, err := f.svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:   "City Clinic",
		Mobile: "9876543210",
	})
	require.NoError(t, err)
	return clinic
}

func TestCreateClinicDefaultsToActive(t *testing.T) {
	f := newFixture()

	clinic := f.createClinic(t)
	assert.Equal(t, model.StatusActive, clinic.Status)
	assert.NotEqual(t, uuid.Nil, clinic.ID)
}

func TestCreateClinicDuplicateMobile(t *testing.T) {
	f := newFixture()
	f.createClinic(t)

	_, err := f.svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:   "Other Clinic",
		Mobile: "9876543210",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDuplicateValue))
}

func TestUpdateClinicPartial(t *testing.T) {
	f := newFixture()
	clinic := f.createClinic(t)

	newName := "Renamed Clinic"
	updated, err := f.svc.UpdateClinic(context.Background(), clinic.ID, &model.UpdateClinicRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, clinic.Mobile, updated.Mobile)
}

func TestUpdateClinicNotFound(t *testing.T) {
	f := newFixture()

	name := "Ghost"
	_, err := f.svc.UpdateClinic(context.Background(), uuid.New(), &model.UpdateClinicRequest{
		Name: &name,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDeleteClinic(t *testing.T) {
	f := newFixture()
	clinic := f.createClinic(t)

	require.NoError(t, f.svc.DeleteClinic(context.Background(), clinic.ID))

	_, err := f.svc.GetClinic(context.Background(), clinic.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDeleteClinicNotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.DeleteClinic(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDeleteClinicWithDoctors(t *testing.T) {
	f := newFixture()
	clinic := f.createClinic(t)

	require.NoError(t, f.doctors.Create(context.Background(), &model.Doctor{
		ClinicID: clinic.ID,
		Name:     "Dr. Roy",
		Mobile:   "9000000001",
		Email:    "roy@example.com",
		Status:   model.StatusActive,
	}))

	err := f.svc.DeleteClinic(context.Background(), clinic.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDependentRecordsExist))
}

func TestDeleteClinicWithPatients(t *testing.T) {
	f := newFixture()
	clinic := f.createClinic(t)

	require.NoError(t, f.patients.Create(context.Background(), &model.Patient{
		ClinicID: clinic.ID,
		DoctorID: uuid.New(),
		Name:     "Pat",
		Mobile:   "9000000002",
		Status:   model.StatusActive,
	}))

	err := f.svc.DeleteClinic(context.Background(), clinic.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDependentRecordsExist))
}

func TestListClinicsByStatus(t *testing.T) {
	f := newFixture()
	f.createClinic(t)

	_, err := f.svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:   "Closed Clinic",
		Mobile: "9123456789",
		Status: model.StatusInactive,
	})
	require.NoError(t, err)

	active, err := f.svc.ListClinics(context.Background(), "", model.StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
