package consultation

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
	consultationService "github.com/hospitalms/hospital-api/internal/service/consultation"
)

type Handler struct {
	service    consultationService.ConsultationServicer
	outboxRepo repository.OutboxRepository
}

func NewHandler(service consultationService.ConsultationServicer, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/clinics/:id/doctors/:doctorId/patients/:patientId/consultations", h.CreateConsultation)
	r.GET("/clinics/:id/consultations", h.ListConsultations)
}

func (h *Handler) CreateConsultation(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	consultation, err := h.service.CreateConsultation(c.Request.Context(), clinicID, doctorID, patientID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "CONSULTATION_CREATE", consultation)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(consultation))
}

func (h *Handler) ListConsultations(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	consultations, err := h.service.ListConsultations(c.Request.Context(), clinicID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
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
