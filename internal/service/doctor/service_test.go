package doctor

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
	svc           *Service
	clinics       *repositorytest.ClinicStore
	doctors       *repositorytest.DoctorStore
	patients      *repositorytest.PatientStore
	consultations *repositorytest.ConsultationStore
	clinicID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clinics := repositorytest.NewClinicStore()
	doctors := repositorytest.NewDoctorStore()
	patients := repositorytest.NewPatientStore()
	consultations := repositorytest.NewConsultationStore()

	doctors.LinkPatients(patients)

	clinic := &model.Clinic{Name: "City Clinic", Mobile: "9876543210", Status: model.StatusActive}
	require.NoError(t, clinics.Create(context.Background(), clinic))

	return &fixture{
		svc:           NewService(doctors, clinics, patients, consultations),
		clinics:       clinics,
		doctors:       doctors,
		patients:      patients,
		consultations: consultations,
		clinicID:      clinic.ID,
	}
}

func (f *fixture) createDoctor(t *testing.T) *model.Doctor {
	t.Helper()
	doctor, err := f.svc.CreateDoctor(context.Background(), f.clinicID, &model.CreateDoctorRequest{
		Name:   "Dr. Roy",
		Mobile: "9000000001",
		Email:  "roy@example.com",
	})
	require.NoError(t, err)
	return doctor
}

func TestCreateDoctor(t *testing.T) {
	f := newFixture(t)

	doctor := f.createDoctor(t)
	assert.Equal(t, f.clinicID, doctor.ClinicID)
	assert.Equal(t, model.StatusActive, doctor.Status)
}

func TestCreateDoctorClinicMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateDoctor(context.Background(), uuid.New(), &model.CreateDoctorRequest{
		Name:   "Dr. Roy",
		Mobile: "9000000001",
		Email:  "roy@example.com",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}

func TestCreateDoctorDuplicateMobile(t *testing.T) {
	f := newFixture(t)
	f.createDoctor(t)

	_, err := f.svc.CreateDoctor(context.Background(), f.clinicID, &model.CreateDoctorRequest{
		Name:   "Dr. Kim",
		Mobile: "9000000001",
		Email:  "kim@example.com",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDuplicateValue))
}

func TestGetDoctorScopedToClinic(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)

	// Same doctor id under a different clinic must not resolve.
	otherClinic := &model.Clinic{Name: "Other Clinic", Mobile: "9111111111", Status: model.StatusActive}
	require.NoError(t, f.clinics.Create(context.Background(), otherClinic))

	_, err := f.svc.GetDoctor(context.Background(), otherClinic.ID, doctor.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUpdateDoctorPartial(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)

	specialty := "Cardiology"
	updated, err := f.svc.UpdateDoctor(context.Background(), f.clinicID, doctor.ID,
		&model.UpdateDoctorRequest{Specialization: &specialty})
	require.NoError(t, err)
	assert.Equal(t, specialty, updated.Specialization)
	assert.Equal(t, doctor.Mobile, updated.Mobile)
}

func TestUpdateDoctorRenameRefreshesPatientSnapshot(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)

	patient := &model.Patient{
		ClinicID:   f.clinicID,
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Name:       "Asha",
		Mobile:     "9000000002",
		Status:     model.StatusActive,
	}
	require.NoError(t, f.patients.Create(context.Background(), patient))

	name := "Dr. Sen"
	_, err := f.svc.UpdateDoctor(context.Background(), f.clinicID, doctor.ID,
		&model.UpdateDoctorRequest{Name: &name})
	require.NoError(t, err)

	stored, err := f.patients.Get(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.DoctorName)
}

func TestDeleteDoctor(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)

	require.NoError(t, f.svc.DeleteDoctor(context.Background(), f.clinicID, doctor.ID))
}

func TestDeleteDoctorWithPatients(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)

	require.NoError(t, f.patients.Create(context.Background(), &model.Patient{
		ClinicID: f.clinicID,
		DoctorID: doctor.ID,
		Name:     "Pat",
		Mobile:   "9000000002",
		Status:   model.StatusActive,
	}))

	err := f.svc.DeleteDoctor(context.Background(), f.clinicID, doctor.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDependentRecordsExist))
}

func TestDeleteDoctorWithConsultationHistory(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)

	require.NoError(t, f.consultations.Create(context.Background(), &model.Consultation{
		ClinicID:         f.clinicID,
		DoctorID:         doctor.ID,
		PatientID:        uuid.New(),
		ConsultationDate: time.Now(),
		Status:           model.StatusActive,
	}))

	err := f.svc.DeleteDoctor(context.Background(), f.clinicID, doctor.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDependentRecordsExist))
}

func TestListDoctorsClinicMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListDoctors(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrParentNotFound))
}
