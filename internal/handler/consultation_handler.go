package handler

import (
	"net/http"

	"pet_constitution/internal/middleware"
	"pet_constitution/internal/model"
	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ConsultationHandler serves consultation bookings
type ConsultationHandler struct {
	service service.ConsultationService
	log     zerolog.Logger
}

// NewConsultationHandler creates a new ConsultationHandler
func NewConsultationHandler(s service.ConsultationService, log zerolog.Logger) *ConsultationHandler {
	return &ConsultationHandler{service: s, log: log}
}

func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req model.CreateConsultationRequest
	if err := bindBody(c, &req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	consultation, err := h.service.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "consultation request received", gin.H{"consultationId": consultation.ID})
}

func (h *ConsultationHandler) GetMyConsultations(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	list, err := h.service.ListMine(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"consultations": list})
}

// GetAllConsultations omits updated_at; the repository does not select it.
func (h *ConsultationHandler) GetAllConsultations(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"consultations": list})
}

func (h *ConsultationHandler) UpdateConsultationStatus(c *gin.Context) {
	id, err := parseID(c, service.ErrConsultationNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req model.UpdateConsultationStatusRequest
	if err := bindBody(c, &req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "status updated", nil)
}

// RegisterConsultationRoutes registers consultation routes. adminMW guards
// the listing and status update when non-empty.
func (h *ConsultationHandler) RegisterConsultationRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc, adminMW ...gin.HandlerFunc) {
	consultationRoutes := rg.Group("/consultations")
	{
		consultationRoutes.POST("", optionalAuthMW, h.CreateConsultation)
		consultationRoutes.GET("/my-consultations", authMW, h.GetMyConsultations)
		consultationRoutes.GET("", chain(adminMW, h.GetAllConsultations)...)
		consultationRoutes.PUT("/:id/status", chain(adminMW, h.UpdateConsultationStatus)...)
	}
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(mw)+1)
	handlers = append(handlers, mw...)
	return append(handlers, h)
}
