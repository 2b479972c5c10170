package handler

import (
	"net/http"

	"pet_constitution/internal/middleware"
	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	log     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: s, log: log}
}

type credentialsRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := bindBody(c, &req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respond(c, http.StatusCreated, "registration successful", gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bindBody(c, &req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respond(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	user, err := h.service.Me(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"user": user})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMW, h.Me)
	}
}
