package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hospohub/internal/auth"
	"hospohub/internal/config"
	"hospohub/internal/models"
	"hospohub/internal/storage"
)

var (
	ErrUserAlreadyExists  = errors.New("username or email is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration and login. It is the boundary that turns
// credentials into an authenticated actor identity; everything downstream
// only ever sees the user id it produces.
type AuthService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (token string, user *models.User, err error)
}

type authService struct {
	userRepo storage.UserRepository
	cfg      config.Config
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo storage.UserRepository, cfg config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates a new user after checking username and email uniqueness.
func (s *authService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.User, error) {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	_, err = s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login verifies credentials and issues a JWT on success.
func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, usernameOrEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.userRepo.GetByEmail(ctx, usernameOrEmail)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		} else if err != nil {
			return "", nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
	} else if err != nil {
		return "", nil, fmt.Errorf("failed to look up user by username: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.cfg.Auth)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}
