package consultation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository/repositorytest"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type fixture struct {
	svc       *Service
	clinics   *repositorytest.ClinicStore
	doctors   *repositorytest.DoctorStore
	patients  *repositorytest.PatientStore
	clinicID  uuid.UUID
	doctorID  uuid.UUID
	patientID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clinics := repositorytest.NewClinicStore()
	doctors := repositorytest.NewDoctorStore()
	patients := repositorytest.NewPatientStore()
	consultations := repositorytest.NewConsultationStore()

	clinic := &model.Clinic{Name: "City Clinic", Mobile: "9876543210", Status: model.StatusActive}
	require.NoError(t, clinics.Create(context.Background(), clinic))

	doctor := &model.Doctor{
		ClinicID: clinic.ID,
		Name:     "Dr. Roy",
		Mobile:   "9000000001",
		Email:    "roy@example.com",
		Status:   model.StatusActive,
	}
	require.NoError(t, doctors.Create(context.Background(), doctor))

	patient := &model.Patient{
		ClinicID: clinic.ID,
		DoctorID: doctor.ID,
		Name:     "Pat",
		Mobile:   "9000000002",
		Status:   model.StatusActive,
	}
	require.NoError(t, patients.Create(context.Background(), patient))

	return &fixture{
		svc:       NewService(consultations, clinics, doctors, patients),
		clinics:   clinics,
		doctors:   doctors,
		patients:  patients,
		clinicID:  clinic.ID,
		doctorID:  doctor.ID,
		patientID: patient.ID,
	}
}

func validRequest() *model.CreateConsultationRequest {
	return &model.CreateConsultationRequest{
		IsPrimary:        true,
		ConsultationDate: time.Now(),
	}
}

func TestCreateConsultation(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	consultation, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, f.doctorID, f.patientID, req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, consultation.Status)
	assert.True(t, consultation.IsPrimary)
	assert.Equal(t, f.doctorID, consultation.DoctorID)
	assert.Equal(t, f.patientID, consultation.PatientID)
	assert.Equal(t, req.ConsultationDate, consultation.ConsultationDate)
}

func TestCreateConsultationClinicMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateConsultation(context.Background(),
		uuid.New(), f.doctorID, f.patientID, validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}

func TestCreateConsultationDoctorMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, uuid.New(), f.patientID, validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}

func TestCreateConsultationPatientMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, f.doctorID, uuid.New(), validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}

func deactivateDoctor(t *testing.T, f *fixture) {
	t.Helper()
	doctor, err := f.doctors.Get(context.Background(), f.doctorID)
	require.NoError(t, err)
	doctor.Status = model.StatusInactive
	require.NoError(t, f.doctors.Update(context.Background(), doctor))
}

func deactivatePatient(t *testing.T, f *fixture) {
	t.Helper()
	patient, err := f.patients.Get(context.Background(), f.patientID)
	require.NoError(t, err)
	patient.Status = model.StatusInactive
	require.NoError(t, f.patients.Update(context.Background(), patient))
}

func TestCreateConsultationInactiveDoctor(t *testing.T) {
	f := newFixture(t)
	deactivateDoctor(t, f)

	_, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, f.doctorID, f.patientID, validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrEntityInactive))
	assert.Contains(t, err.Error(), "doctor")
}

func TestCreateConsultationInactivePatient(t *testing.T) {
	f := newFixture(t)
	deactivatePatient(t, f)

	_, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, f.doctorID, f.patientID, validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrEntityInactive))
	assert.Contains(t, err.Error(), "patient")
}

func TestCreateConsultationBothInactiveReportsDoctor(t *testing.T) {
	f := newFixture(t)
	deactivateDoctor(t, f)
	deactivatePatient(t, f)

	_, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, f.doctorID, f.patientID, validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrEntityInactive))
	assert.Contains(t, err.Error(), "doctor")
}

func TestListConsultations(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateConsultation(context.Background(),
		f.clinicID, f.doctorID, f.patientID, validRequest())
	require.NoError(t, err)

	list, err := f.svc.ListConsultations(context.Background(), f.clinicID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListConsultationsClinicMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListConsultations(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}
