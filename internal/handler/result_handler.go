package handler

import (
	"net/http"

	"pet_constitution/internal/middleware"
	"pet_constitution/internal/model"
	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ResultHandler serves questionnaire results
type ResultHandler struct {
	service service.ResultService
	log     zerolog.Logger
}

// NewResultHandler creates a new ResultHandler
func NewResultHandler(s service.ResultService, log zerolog.Logger) *ResultHandler {
	return &ResultHandler{service: s, log: log}
}

func (h *ResultHandler) CreateResult(c *gin.Context) {
	var req model.CreateResultRequest
	if err := bindBody(c, &req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	message := "result saved temporarily"
	if resp.IsLoggedIn {
		message = "result saved"
	}
	respond(c, http.StatusCreated, message, resp)
}

func (h *ResultHandler) GetMyResults(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	results, err := h.service.ListMine(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"results": results})
}

// GetResultByID applies the ownership filter only for authenticated callers.
func (h *ResultHandler) GetResultByID(c *gin.Context) {
	id, err := parseID(c, service.ErrResultNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	result, err := h.service.Get(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"result": result})
}

func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id, err := parseID(c, service.ErrResultNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := h.service.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "result deleted", nil)
}

// RegisterResultRoutes registers result routes
func (h *ResultHandler) RegisterResultRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	resultRoutes := rg.Group("/results")
	{
		resultRoutes.POST("", optionalAuthMW, h.CreateResult)
		resultRoutes.GET("/my-results", authMW, h.GetMyResults)
		resultRoutes.GET("/:id", optionalAuthMW, h.GetResultByID)
		resultRoutes.DELETE("/:id", authMW, h.DeleteResult)
	}
}
