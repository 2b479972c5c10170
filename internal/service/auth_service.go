package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet_constitution/internal/metrics"
	"pet_constitution/internal/model"
	"pet_constitution/internal/repository"
	"pet_constitution/internal/utils"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, email, password string, name *string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	VerifyToken(token string) (*model.Identity, error)
	Me(ctx context.Context, userID int64) (*model.PublicUser, error)
	EnsureAdmin(ctx context.Context, email, password string, name *string) (AdminSeedOutcome, error)
}

// AdminSeedOutcome reports what EnsureAdmin did.
type AdminSeedOutcome int

const (
	AdminAlreadyExists AdminSeedOutcome = iota
	AdminPromoted
	AdminCreated
)

func (o AdminSeedOutcome) String() string {
	switch o {
	case AdminPromoted:
		return "promoted"
	case AdminCreated:
		return "created"
	default:
		return "already-admin"
	}
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, log zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		log:      log,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, email, password string, name *string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         optional(name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}
	metrics.UsersRegisteredTotal.Inc()

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("user created, but failed to generate token")
		return nil, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token. Unknown email and
// wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// VerifyToken decodes a bearer token. The identity is not re-checked
// against the store.
func (s *authService) VerifyToken(token string) (*model.Identity, error) {
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, ErrForbiddenToken
	}
	return &model.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// Me returns the current public projection of userID.
func (s *authService) Me(ctx context.Context, userID int64) (*model.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	public := user.Public()
	public.CreatedAt = &user.CreatedAt
	return &public, nil
}

// EnsureAdmin makes sure email belongs to an administrator, promoting an
// existing account or creating a new one.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string, name *string) (AdminSeedOutcome, error) {
	if email == "" {
		return 0, ErrMissingCredentials
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		if existing.IsAdmin {
			return AdminAlreadyExists, nil
		}
		if _, err := s.userRepo.PromoteToAdmin(ctx, email); err != nil {
			return 0, err
		}
		return AdminPromoted, nil
	}

	if password == "" {
		return 0, ErrMissingCredentials
	}
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	admin := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         optional(name),
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return 0, fmt.Errorf("failed to create admin: %w", err)
	}
	return AdminCreated, nil
}

// hashPassword reports passwords bcrypt cannot take as a validation error.
func hashPassword(password string) (string, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hashed, nil
}

// optional turns blank strings into NULL.
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
