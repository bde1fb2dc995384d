package doctor

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
	doctorService "github.com/hospitalms/hospital-api/internal/service/doctor"
)

type Handler struct {
	service    doctorService.DoctorServicer
	outboxRepo repository.OutboxRepository
}

func NewHandler(service doctorService.DoctorServicer, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

// RegisterRoutes mounts the doctor endpoints under their clinic.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	doctors := r.Group("/clinics/:id/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:doctorId", h.GetDoctor)
		doctors.PUT("/:doctorId", h.UpdateDoctor)
		doctors.DELETE("/:doctorId", admin, h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.CreateDoctor(c.Request.Context(), clinicID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "DOCTOR_CREATE", doctor)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	clinicID, doctorID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), clinicID, doctorID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	doctors, err := h.service.ListDoctors(c.Request.Context(), clinicID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	clinicID, doctorID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.UpdateDoctor(c.Request.Context(), clinicID, doctorID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "DOCTOR_UPDATE", doctor)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	clinicID, doctorID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDoctor(c.Request.Context(), clinicID, doctorID); err != nil {
		handler.Error(c, err)
		return
	}

	h.emitEvent(c.Request.Context(), "DOCTOR_DELETE", gin.H{"id": doctorID, "clinic_id": clinicID})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": doctorID}))
}

func (h *Handler) pathIDs(c *gin.Context) (clinicID, doctorID uuid.UUID, ok bool) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return uuid.Nil, uuid.Nil, false
	}
	doctorID, err = uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return uuid.Nil, uuid.Nil, false
	}
	return clinicID, doctorID, true
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
