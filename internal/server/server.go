// Package server assembles the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"pet_constitution/internal/handler"
	"pet_constitution/internal/middleware"
	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the domain services behind the API.
type Services struct {
	Auth          service.AuthService
	Results       service.ResultService
	Consultations service.ConsultationService
	Users         service.UserService
	Email         service.EmailService
}

type Options struct {
	// AdminEnforce puts the admin-only listings behind a bearer token whose
	// user has is_admin set.
	AdminEnforce       bool
	CORSAllowedOrigins []string
	DB                 Pinger
	Log                zerolog.Logger
}

var endpoints = gin.H{
	"auth":          "/api/auth",
	"results":       "/api/results",
	"consultations": "/api/consultations",
	"users":         "/api/users",
	"email":         "/api/email",
	"health":        "/health",
	"metrics":       "/metrics",
}

// New returns the configured gin engine.
func New(opts Options, svcs Services) *gin.Engine {
	log := opts.Log
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error().
				Interface("panic", recovered).
				Str("request_id", c.GetString(middleware.RequestIDKey)).
				Msg("recovered from panic")
			handler.Fail(c, http.StatusInternalServerError, "internal server error")
		}),
		middleware.CORSMiddleware(opts.CORSAllowedOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		handler.Fail(c, http.StatusNotFound, "route not found")
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.Envelope{
			Success: true,
			Message: "pet constitution API",
			Data:    gin.H{"endpoints": endpoints},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if opts.DB != nil {
			if err := opts.DB.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtAuthMW := middleware.JWTAuthMiddleware(svcs.Auth)
	optionalAuthMW := middleware.OptionalJWTAuthMiddleware(svcs.Auth)
	var adminMW []gin.HandlerFunc
	if opts.AdminEnforce {
		adminMW = []gin.HandlerFunc{jwtAuthMW, middleware.AdminMiddleware(svcs.Users, log)}
	}

	apiGroup := router.Group("/api")
	handler.NewAuthHandler(svcs.Auth, log).RegisterAuthRoutes(apiGroup, jwtAuthMW)
	handler.NewResultHandler(svcs.Results, log).RegisterResultRoutes(apiGroup, jwtAuthMW, optionalAuthMW)
	handler.NewConsultationHandler(svcs.Consultations, log).RegisterConsultationRoutes(apiGroup, jwtAuthMW, optionalAuthMW, adminMW...)
	handler.NewUserHandler(svcs.Users, log).RegisterUserRoutes(apiGroup, adminMW...)
	handler.NewEmailHandler(svcs.Email, log).RegisterEmailRoutes(apiGroup)

	return router
}
