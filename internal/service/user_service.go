package service

import (
	"context"
	"fmt"

	"pet_constitution/internal/model"
	"pet_constitution/internal/repository"
)

// UserService backs the administrative user views
type UserService interface {
	List(ctx context.Context) ([]model.UserSummary, error)
	Detail(ctx context.Context, id int64) (*model.UserDetail, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type userService struct {
	users         repository.UserRepository
	results       repository.ResultRepository
	consultations repository.ConsultationRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, results repository.ResultRepository, consultations repository.ConsultationRepository) UserService {
	return &userService{users: users, results: results, consultations: consultations}
}

func (s *userService) List(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Detail reads the user, their results and their consultations in three
// separate queries. No transaction spans them.
func (s *userService) Detail(ctx context.Context, id int64) (*model.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	results, err := s.results.FindByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user results: %w", err)
	}

	consultations, err := s.consultations.FindByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user consultations: %w", err)
	}

	return &model.UserDetail{
		User: model.UserSummary{
			ID:        user.ID,
			Name:      user.Name,
			Phone:     user.Phone,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		Results:       results,
		Consultations: consultations,
	}, nil
}

// IsAdmin reports the stored administrator flag; unknown users are not admins.
func (s *userService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	return user != nil && user.IsAdmin, nil
}
