package service

import (
	"context"
	"fmt"
	"time"

	"pet_constitution/internal/metrics"
	"pet_constitution/internal/model"
	"pet_constitution/internal/repository"
)

// ConsultationService handles consultation bookings
type ConsultationService interface {
	Create(ctx context.Context, identity *model.Identity, req model.CreateConsultationRequest) (*model.Consultation, error)
	ListMine(ctx context.Context, userID int64) ([]model.Consultation, error)
	ListAll(ctx context.Context) ([]model.Consultation, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type consultationService struct {
	repo repository.ConsultationRepository
	loc  *time.Location
	now  func() time.Time
}

// NewConsultationService creates a new ConsultationService. loc is the zone
// in which "today" is evaluated for preferred dates.
func NewConsultationService(repo repository.ConsultationRepository, loc *time.Location) ConsultationService {
	if loc == nil {
		loc = time.UTC
	}
	return &consultationService{repo: repo, loc: loc, now: time.Now}
}

func (s *consultationService) Create(ctx context.Context, identity *model.Identity, req model.CreateConsultationRequest) (*model.Consultation, error) {
	if req.Name == "" || req.Phone == "" || req.PreferredDate == "" || req.Content == "" {
		return nil, ErrMissingConsultationData
	}
	if !validPhone(req.Phone) {
		return nil, ErrInvalidPhone
	}
	if !validDate(req.PreferredDate) {
		return nil, ErrInvalidDate
	}
	// Both sides are YYYY-MM-DD, so lexical order is date order.
	today := s.now().In(s.loc).Format(isoDateLayout)
	if req.PreferredDate < today {
		return nil, ErrPastDate
	}

	c := &model.Consultation{
		Name:          req.Name,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		Content:       req.Content,
		Status:        model.StatusPending,
	}
	if identity != nil {
		userID := identity.UserID
		c.UserID = &userID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save consultation: %w", err)
	}
	metrics.ConsultationsCreatedTotal.Inc()
	return c, nil
}

func (s *consultationService) ListMine(ctx context.Context, userID int64) ([]model.Consultation, error) {
	list, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return list, nil
}

func (s *consultationService) ListAll(ctx context.Context) ([]model.Consultation, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return list, nil
}

// UpdateStatus moves a booking to one of the enumerated statuses.
func (s *consultationService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !validStatus(status) {
		return ErrInvalidStatus
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update consultation status: %w", err)
	}
	if !updated {
		return ErrConsultationNotFound
	}
	return nil
}
