package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "prism/internal/errors"
	"prism/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// IdentityService implements registration, credential checks and
// profile updates. Passwords are bcrypt-hashed on every write path.
type IdentityService struct {
	users UserStore
}

func NewIdentityService(users UserStore) *IdentityService {
	return &IdentityService{users: users}
}

// Register creates a non-staff account. A taken email fails with
// ErrDuplicateEmail.
func (s *IdentityService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		IsStaff:      false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile returns the user for dashboard display.
func (s *IdentityService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile mutates the caller's name and email, and optionally the
// password when NewPassword is set. The confirmation must match or the
// whole update fails with ErrValidationFailed.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.NewPassword != "" {
		if req.NewPassword != req.ConfirmPassword {
			return fmt.Errorf("%w: passwords do not match", apperrors.ErrValidationFailed)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	return s.users.Update(ctx, user)
}
