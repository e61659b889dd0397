package service

import (
	"context"
	"testing"

	apperrors "prism/internal/errors"
	"prism/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestServices(t)

	user := registerUser(t, svc, "alice@example.com")

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
	assert.False(t, user.IsStaff)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestServices(t)

	user, err := svc.Identity.Register(context.Background(), &models.RegisterRequest{
		FullName: "  Alice  ",
		Email:    "  Alice@Example.COM ",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.FullName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestServices(t)

	registerUser(t, svc, "alice@example.com")

	_, err := svc.Identity.Register(context.Background(), &models.RegisterRequest{
		FullName: "Other Alice",
		Email:    "alice@example.com",
		Password: "other-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	registerUser(t, svc, "alice@example.com")

	user, err := svc.Identity.Authenticate(ctx, "alice@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// Case-insensitive on the email side.
	_, err = svc.Identity.Authenticate(ctx, "ALICE@example.com", "secret-pass")
	assert.NoError(t, err)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newTestServices(t)

	registerUser(t, svc, "alice@example.com")

	_, err := svc.Identity.Authenticate(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Identity.Authenticate(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, svc, "alice@example.com")

	err := svc.Identity.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		FullName:        "Alice Updated",
		Email:           "alice@example.com",
		NewPassword:     "new-pass",
		ConfirmPassword: "new-pass",
	})
	require.NoError(t, err)

	_, err = svc.Identity.Authenticate(ctx, "alice@example.com", "new-pass")
	assert.NoError(t, err)
	_, err = svc.Identity.Authenticate(ctx, "alice@example.com", "secret-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUpdateProfilePasswordMismatch(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, svc, "alice@example.com")

	err := svc.Identity.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		FullName:        "Alice",
		Email:           "alice@example.com",
		NewPassword:     "new-pass",
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// The old password still works, nothing was committed.
	_, err = svc.Identity.Authenticate(ctx, "alice@example.com", "secret-pass")
	assert.NoError(t, err)
}

func TestUpdateProfileWithoutPasswordKeepsHash(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, svc, "alice@example.com")

	err := svc.Identity.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		FullName: "Alice Renamed",
		Email:    "alice2@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Identity.Authenticate(ctx, "alice2@example.com", "secret-pass")
	assert.NoError(t, err)
}
