// Package repositorytest provides in-memory repository implementations for
// service tests. They reproduce the error semantics of the postgres layer:
// typed not-found errors and duplicate detection on unique fields.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalms/hospital-api/internal/model"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]*model.User)}
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return apperrors.DuplicateValue("username", nil)
		}
		if u.Email == user.Email {
			return apperrors.DuplicateValue("email", nil)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.NotFound("user", nil)
	}
	user.UpdatedAt = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

type ClinicStore struct {
	mu      sync.Mutex
	clinics map[uuid.UUID]*model.Clinic
}

func NewClinicStore() *ClinicStore {
	return &ClinicStore{clinics: make(map[uuid.UUID]*model.Clinic)}
}

func (s *ClinicStore) Create(ctx context.Context, clinic *model.Clinic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clinics {
		if c.Mobile == clinic.Mobile {
			return apperrors.DuplicateValue("mobile", nil)
		}
	}
	if clinic.ID == uuid.Nil {
		clinic.ID = uuid.New()
	}
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()
	cp := *clinic
	s.clinics[clinic.ID] = &cp
	return nil
}

func (s *ClinicStore) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clinics[id]
	if !ok {
		return nil, apperrors.NotFound("clinic", nil)
	}
	cp := *c
	return &cp, nil
}

func (s *ClinicStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.clinics[id]
	return ok, nil
}

func (s *ClinicStore) Update(ctx context.Context, clinic *model.Clinic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clinics[clinic.ID]; !ok {
		return apperrors.NotFound("clinic", nil)
	}
	clinic.UpdatedAt = time.Now()
	cp := *clinic
	s.clinics[clinic.ID] = &cp
	return nil
}

func (s *ClinicStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clinics[id]; !ok {
		return apperrors.NotFound("clinic", nil)
	}
	delete(s.clinics, id)
	return nil
}

func (s *ClinicStore) List(ctx context.Context, search, status string) ([]*model.Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Clinic
	for _, c := range s.clinics {
		if status != "" && c.Status != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type DoctorStore struct {
	mu       sync.Mutex
	doctors  map[uuid.UUID]*model.Doctor
	patients *PatientStore
}

func NewDoctorStore() *DoctorStore {
	return &DoctorStore{doctors: make(map[uuid.UUID]*model.Doctor)}
}

// LinkPatients mirrors the doctor_name snapshot refresh that the postgres
// repository performs when a doctor row is updated.
func (s *DoctorStore) LinkPatients(patients *PatientStore) {
	s.patients = patients
}

func (s *DoctorStore) Create(ctx context.Context, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.doctors {
		if d.Mobile == doctor.Mobile {
			return apperrors.DuplicateValue("mobile", nil)
		}
		if d.Email == doctor.Email {
			return apperrors.DuplicateValue("email", nil)
		}
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	return nil
}

func (s *DoctorStore) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	cp := *d
	return &cp, nil
}

func (s *DoctorStore) GetInClinic(ctx context.Context, clinicID, doctorID uuid.UUID) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[doctorID]
	if !ok || d.ClinicID != clinicID {
		return nil, apperrors.NotFound("doctor", nil)
	}
	cp := *d
	return &cp, nil
}

func (s *DoctorStore) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Doctor
	for _, d := range s.doctors {
		if d.ClinicID == clinicID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *DoctorStore) Update(ctx context.Context, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[doctor.ID]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	doctor.UpdatedAt = time.Now()
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	if s.patients != nil {
		s.patients.setDoctorName(doctor.ID, doctor.Name)
	}
	return nil
}

func (s *DoctorStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[id]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	delete(s.doctors, id)
	return nil
}

func (s *DoctorStore) CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, d := range s.doctors {
		if d.ClinicID == clinicID {
			n++
		}
	}
	return n, nil
}

type PatientStore struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*model.Patient
}

func NewPatientStore() *PatientStore {
	return &PatientStore{patients: make(map[uuid.UUID]*model.Patient)}
}

func (s *PatientStore) Create(ctx context.Context, patient *model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.Mobile == patient.Mobile {
			return apperrors.DuplicateValue("mobile", nil)
		}
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()
	cp := *patient
	s.patients[patient.ID] = &cp
	return nil
}

func (s *PatientStore) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	cp := *p
	return &cp, nil
}

func (s *PatientStore) GetInClinic(ctx context.Context, clinicID, patientID uuid.UUID) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[patientID]
	if !ok || p.ClinicID != clinicID {
		return nil, apperrors.NotFound("patient", nil)
	}
	cp := *p
	return &cp, nil
}

func (s *PatientStore) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Patient
	for _, p := range s.patients {
		if p.ClinicID == clinicID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *PatientStore) Update(ctx context.Context, patient *model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[patient.ID]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	patient.UpdatedAt = time.Now()
	cp := *patient
	s.patients[patient.ID] = &cp
	return nil
}

func (s *PatientStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	delete(s.patients, id)
	return nil
}

func (s *PatientStore) CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.patients {
		if p.ClinicID == clinicID {
			n++
		}
	}
	return n, nil
}

func (s *PatientStore) setDoctorName(doctorID uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.DoctorID == doctorID {
			p.DoctorName = name
			p.UpdatedAt = time.Now()
		}
	}
}

func (s *PatientStore) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.patients {
		if p.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

type ConsultationStore struct {
	mu            sync.Mutex
	consultations []*model.Consultation
}

func NewConsultationStore() *ConsultationStore {
	return &ConsultationStore{}
}

func (s *ConsultationStore) Create(ctx context.Context, consultation *model.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if consultation.ID == uuid.Nil {
		consultation.ID = uuid.New()
	}
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = time.Now()
	cp := *consultation
	s.consultations = append(s.consultations, &cp)
	return nil
}

func (s *ConsultationStore) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Consultation
	for _, c := range s.consultations {
		if c.ClinicID == clinicID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *ConsultationStore) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.consultations {
		if c.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

type OutboxStore struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func NewOutboxStore() *OutboxStore {
	return &OutboxStore{}
}

func (s *OutboxStore) Create(ctx context.Context, event *model.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.Status = string(model.OutboxStatusPending)
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	cp := *event
	s.events = append(s.events, &cp)
	return nil
}

func (s *OutboxStore) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.OutboxEvent
	for _, e := range s.events {
		if e.Status != string(model.OutboxStatusPending) {
			continue
		}
		cp := *e
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *OutboxStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			e.Status = string(status)
			e.ErrorMessage = errMessage
			e.UpdatedAt = time.Now()
			if status == model.OutboxStatusProcessed {
				now := time.Now()
				e.ProcessedAt = &now
			}
			return nil
		}
	}
	return apperrors.NotFound("outbox event", nil)
}

// Events returns a snapshot of everything written so far.
func (s *OutboxStore) Events() []*model.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.OutboxEvent, 0, len(s.events))
	for _, e := range s.events {
		cp := *e
		out = append(out, &cp)
	}
	return out
}
