package handler

import (
	"net/http"

	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler serves the administrative user views
type UserHandler struct {
	service service.UserService
	log     zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: s, log: log}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"users": users})
}

func (h *UserHandler) GetUserDetail(c *gin.Context) {
	id, err := parseID(c, service.ErrUserNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "", detail)
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	userRoutes := rg.Group("/users")
	{
		userRoutes.GET("", chain(adminMW, h.GetUsers)...)
		userRoutes.GET("/:id", chain(adminMW, h.GetUserDetail)...)
	}
}
