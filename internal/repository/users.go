package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prism/internal/database"
	apperrors "prism/internal/errors"
	"prism/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A duplicate email surfaces as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, is_staff)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, registered_at`

	err := r.db.QueryRowContext(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.IsStaff,
	).Scan(&user.ID, &user.RegisteredAt)

	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT user_id, full_name, email, password_hash, is_staff, registered_at
		FROM users
		WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.RegisteredAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT user_id, full_name, email, password_hash, is_staff, registered_at
		FROM users
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.RegisteredAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT user_id, full_name, email, password_hash, is_staff, registered_at
		FROM users
		ORDER BY user_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.IsStaff,
			&user.RegisteredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update writes the mutable user fields. The registered_at column is
// immutable.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, password_hash = $3, is_staff = $4
		WHERE user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.IsStaff,
		user.ID,
	)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user. Bookings and starred items cascade at the
// schema level.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
