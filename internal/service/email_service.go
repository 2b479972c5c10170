package service

import (
	"context"

	"pet_constitution/internal/mailer"
	"pet_constitution/internal/mealplan"
	"pet_constitution/internal/metrics"
	"pet_constitution/internal/model"

	"github.com/rs/zerolog"
)

// EmailService sends the constitution meal-plan email
type EmailService interface {
	SendMealPlan(ctx context.Context, req model.SendMealPlanRequest) error
}

type emailService struct {
	catalog *mealplan.Catalog
	sender  mailer.Sender
	log     zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(catalog *mealplan.Catalog, sender mailer.Sender, log zerolog.Logger) EmailService {
	return &emailService{catalog: catalog, sender: sender, log: log}
}

// SendMealPlan renders the plan for req.Constitution and mails it once.
// A transport failure comes back as *DispatchError.
func (s *emailService) SendMealPlan(ctx context.Context, req model.SendMealPlanRequest) error {
	if req.Email == "" || req.Constitution == "" || req.PetName == "" {
		return ErrMissingMailData
	}

	plan, ok := s.catalog.Lookup(req.Constitution)
	if !ok {
		return ErrUnsupportedConstitution
	}

	html, err := s.catalog.Render(req.PetName, plan)
	if err != nil {
		return err
	}

	msg := mailer.Message{
		To:      req.Email,
		Subject: mealplan.Subject(req.PetName, req.Constitution),
		HTML:    html,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.MealPlanEmailsTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).
			Str("to", req.Email).
			Str("constitution", req.Constitution).
			Msg("meal plan email failed")
		return &DispatchError{Err: err}
	}

	metrics.MealPlanEmailsTotal.WithLabelValues("sent").Inc()
	s.log.Info().Str("to", req.Email).Str("constitution", req.Constitution).Msg("meal plan email sent")
	return nil
}
