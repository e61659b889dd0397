package service

import (
	"context"
	"strings"

	"prism/internal/models"
)

// UserService implements the staff user management operations. Account
// self-service lives in IdentityService.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update rewrites name, email and the staff flag. The flag arrives as
// the checkbox value: "on" means staff.
func (s *UserService) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.IsStaff = req.IsStaff == "on"

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user; bookings and starred items cascade at the
// schema level.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
