// Command create-admin makes sure the configured admin account exists.
package main

import (
	"context"
	"os"
	"time"

	"pet_constitution/internal/config"
	"pet_constitution/internal/logger"
	"pet_constitution/internal/repository"
	"pet_constitution/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.LoadSeed(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	dbPool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(ctx, dbPool, log); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		os.Exit(1)
	}

	// Seeding never issues tokens, so no JWT helper is wired.
	auth := service.NewAuthService(repository.NewUserRepository(dbPool), nil, log)

	var name *string
	if cfg.Admin.Name != "" {
		name = &cfg.Admin.Name
	}
	outcome, err := auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, name)
	if err != nil {
		log.Error().Err(err).Str("email", cfg.Admin.Email).Msg("failed to seed admin account")
		os.Exit(1)
	}

	log.Info().Str("email", cfg.Admin.Email).Stringer("outcome", outcome).Msg("admin account ready")
}
