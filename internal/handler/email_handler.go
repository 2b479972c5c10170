package handler

import (
	"net/http"

	"pet_constitution/internal/model"
	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EmailHandler sends meal-plan emails
type EmailHandler struct {
	service service.EmailService
	log     zerolog.Logger
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(s service.EmailService, log zerolog.Logger) *EmailHandler {
	return &EmailHandler{service: s, log: log}
}

func (h *EmailHandler) SendMealPlan(c *gin.Context) {
	var req model.SendMealPlanRequest
	if err := bindBody(c, &req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SendMealPlan(c.Request.Context(), req); err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "meal plan email sent", nil)
}

// RegisterEmailRoutes registers email routes
func (h *EmailHandler) RegisterEmailRoutes(rg *gin.RouterGroup) {
	rg.Group("/email").POST("/send-meal-plan", h.SendMealPlan)
}
