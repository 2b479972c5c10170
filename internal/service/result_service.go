package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"pet_constitution/internal/metrics"
	"pet_constitution/internal/model"
	"pet_constitution/internal/repository"
)

// ResultService stores and retrieves questionnaire results
type ResultService interface {
	Create(ctx context.Context, identity *model.Identity, req model.CreateResultRequest) (*model.CreateResultResponse, error)
	ListMine(ctx context.Context, userID int64) ([]model.Result, error)
	Get(ctx context.Context, identity *model.Identity, id int64) (*model.Result, error)
	Delete(ctx context.Context, userID, id int64) error
}

type resultService struct {
	repo repository.ResultRepository
}

// NewResultService creates a new ResultService
func NewResultService(repo repository.ResultRepository) ResultService {
	return &resultService{repo: repo}
}

// Create stores a submission, owned by identity when one is present.
func (s *resultService) Create(ctx context.Context, identity *model.Identity, req model.CreateResultRequest) (*model.CreateResultResponse, error) {
	if req.PetInfo == nil || isAbsent(req.Answers) || req.Constitution == "" {
		return nil, ErrMissingResultData
	}

	var answers []json.RawMessage
	if err := json.Unmarshal(req.Answers, &answers); err != nil || len(answers) == 0 {
		return nil, ErrInvalidAnswers
	}

	result := &model.Result{
		PetName:      req.PetInfo.Name.StringOr(model.DefaultPetName),
		PetAge:       req.PetInfo.Age.StringOr(""),
		PetWeight:    req.PetInfo.Weight.StringOr(""),
		PetSymptoms:  req.PetInfo.Symptoms.StringOr(""),
		Answers:      answers,
		Constitution: req.Constitution,
	}
	if identity != nil {
		userID := identity.UserID
		result.UserID = &userID
	}

	if err := s.repo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	ownership := "temporary"
	if result.UserID != nil {
		ownership = "owned"
	}
	metrics.ResultsCreatedTotal.WithLabelValues(ownership).Inc()

	return &model.CreateResultResponse{
		ResultID:   result.ID,
		IsLoggedIn: result.UserID != nil,
	}, nil
}

// ListMine returns the caller's results, newest first.
func (s *resultService) ListMine(ctx context.Context, userID int64) ([]model.Result, error) {
	results, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// Get resolves a result by id. An authenticated caller only sees their own
// results; an anonymous caller can read any result by id.
func (s *resultService) Get(ctx context.Context, identity *model.Identity, id int64) (*model.Result, error) {
	var (
		result *model.Result
		err    error
	)
	if identity != nil {
		result, err = s.repo.FindByIDForUser(ctx, id, identity.UserID)
	} else {
		result, err = s.repo.FindByID(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

// Delete removes one of the caller's results. Someone else's result is
// reported as not found.
func (s *resultService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.DeleteForUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	if !deleted {
		return ErrResultNotFound
	}
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
