package router

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/hospitalms/hospital-api/internal/handler"
	authHandler "github.com/hospitalms/hospital-api/internal/handler/auth"
	clinicHandler "github.com/hospitalms/hospital-api/internal/handler/clinic"
	consultationHandler "github.com/hospitalms/hospital-api/internal/handler/consultation"
	doctorHandler "github.com/hospitalms/hospital-api/internal/handler/doctor"
	patientHandler "github.com/hospitalms/hospital-api/internal/handler/patient"
	"github.com/hospitalms/hospital-api/internal/middleware"
	"github.com/hospitalms/hospital-api/internal/repository/repositorytest"
	authService "github.com/hospitalms/hospital-api/internal/service/auth"
	clinicService "github.com/hospitalms/hospital-api/internal/service/clinic"
	consultationService "github.com/hospitalms/hospital-api/internal/service/consultation"
	doctorService "github.com/hospitalms/hospital-api/internal/service/doctor"
	patientService "github.com/hospitalms/hospital-api/internal/service/patient"
	pkgauth "github.com/hospitalms/hospital-api/pkg/auth"
	"github.com/hospitalms/hospital-api/pkg/security"
)

var (
	engineOnce sync.Once
	testEngine http.Handler
)

// newTestEngine builds the full router once; the prometheus collectors it
// registers can only be registered a single time per process.
func newTestEngine(t *testing.T) http.Handler {
	t.Helper()
	engineOnce.Do(func() {
		testEngine = buildEngine()
	})
	return testEngine
}

func buildEngine() http.Handler {
	users := repositorytest.NewUserStore()
	clinics := repositorytest.NewClinicStore()
	doctors := repositorytest.NewDoctorStore()
	patients := repositorytest.NewPatientStore()
	consultations := repositorytest.NewConsultationStore()
	outbox := repositorytest.NewOutboxStore()

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens := pkgauth.NewTokenService("router-test-secret", time.Minute)

	authSvc := authService.NewService(users, hasher, tokens, time.Minute)
	clinicSvc := clinicService.NewService(clinics, doctors, patients)
	doctorSvc := doctorService.NewService(doctors, clinics, patients, consultations)
	patientSvc := patientService.NewService(patients, clinics, doctors)
	consultationSvc := consultationService.NewService(consultations, clinics, doctors, patients)

	r := NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		clinicHandler.NewHandler(clinicSvc, outbox),
		doctorHandler.NewHandler(doctorSvc, outbox),
		patientHandler.NewHandler(patientSvc, outbox),
		consultationHandler.NewHandler(consultationSvc, outbox),
		handler.NewHandler(nil),
		RouterConfig{CORSConfig: middleware.DefaultCORSConfig(), MetricsPrefix: "router_test"},
	)
	r.Setup()
	return r.Engine()
}

func TestHealthRoutesUnderAPIGroup(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{
		"/api/v1/health/live",
		"/api/v1/health/ready",
		"/api/v1/health/metrics",
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// Health endpoints are not mounted at the engine root.
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/clinics", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
