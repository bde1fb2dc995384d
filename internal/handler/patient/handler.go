package patient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hospitalms/hospital-api/internal/handler"
	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	patientService "github.com/hospitalms/hospital-api/internal/service/patient"
)

type Handler struct {
	service    patientService.PatientServicer
	outboxRepo repository.OutboxRepository
}

func NewHandler(service patientService.PatientServicer, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the patient endpoints under their clinic.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	patients := r.Group("/clinics/:id/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:patientId", h.GetPatient)
		patients.PUT("/:patientId", h.UpdatePatient)
		patients.DELETE("/:patientId", admin, h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.service.CreatePatient(c.Request.Context(), clinicID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "PATIENT_CREATE", patient)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) GetPatient(c *gin.Context) {
	clinicID, patientID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), clinicID, patientID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) ListPatients(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), clinicID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	clinicID, patientID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.service.UpdatePatient(c.Request.Context(), clinicID, patientID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "PATIENT_UPDATE", patient)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	clinicID, patientID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), clinicID, patientID); err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "PATIENT_DELETE", gin.H{"id": patientID, "clinic_id": clinicID})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": patientID}))
}

func (h *Handler) pathIDs(c *gin.Context) (clinicID, patientID uuid.UUID, ok bool) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return uuid.Nil, uuid.Nil, false
	}
	patientID, err = uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return uuid.Nil, uuid.Nil, false
	}
	return clinicID, patientID, true
}

func (h *Handler) emitEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to marshal event payload")
		return
	}
	if err := h.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to create outbox event")
	}
}
