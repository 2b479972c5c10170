package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet_constitution/internal/config"
	"pet_constitution/internal/logger"
	"pet_constitution/internal/mailer"
	"pet_constitution/internal/mealplan"
	"pet_constitution/internal/repository"
	"pet_constitution/internal/server"
	"pet_constitution/internal/service"
	"pet_constitution/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Configuration ---
	cfg, err := config.Load(ctx)
	bootLog := logger.New(logger.Options{Level: "info", Service: "pet-constitution"})
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "pet-constitution",
	})
	if envErr != nil {
		log.Info().Msg("no .env file found, relying on environment variables")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, log); err != nil {
		log.Fatal().Err(err).Msg("failed to auto-migrate database")
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWT.Secret, cfg.JWTExpiration())
	catalog, err := mealplan.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load meal plans")
	}
	mailSender := mailer.NewSMTPSender(mailer.SMTPOptions{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, config.NewMailBreaker(cfg.Mail, log))

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	resultRepo := repository.NewResultRepository(dbPool)
	consultationRepo := repository.NewConsultationRepository(dbPool)

	// --- Initialize Services ---
	services := server.Services{
		Auth:          service.NewAuthService(userRepo, jwtUtil, log),
		Results:       service.NewResultService(resultRepo),
		Consultations: service.NewConsultationService(consultationRepo, loc),
		Users:         service.NewUserService(userRepo, resultRepo, consultationRepo),
		Email:         service.NewEmailService(catalog, mailSender, log),
	}

	// --- Setup Gin Router ---
	router := server.New(server.Options{
		AdminEnforce:       cfg.AdminEnforce,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DB:                 dbPool,
		Log:                log,
	}, services)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("listen failed")
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exiting")
}
