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

type StarredItemRepository struct {
	db *database.DB
}

func NewStarredItemRepository(db *database.DB) *StarredItemRepository {
	return &StarredItemRepository{db: db}
}

// Get returns the starred item for the exact triple, or nil when the
// user has not starred the object.
func (r *StarredItemRepository) Get(ctx context.Context, userID int64, contentType, objectID string) (*models.StarredItem, error) {
	item := &models.StarredItem{}
	query := `
		SELECT id, user_id, content_type, object_id
		FROM starred_items
		WHERE user_id = $1 AND content_type = $2 AND object_id = $3`

	err := r.db.QueryRowContext(ctx, query, userID, contentType, objectID).Scan(
		&item.ID,
		&item.UserID,
		&item.ContentType,
		&item.ObjectID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get starred item: %w", err)
	}
	return item, nil
}

func (r *StarredItemRepository) Create(ctx context.Context, item *models.StarredItem) error {
	query := `
		INSERT INTO starred_items (user_id, content_type, object_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.UserID,
		item.ContentType,
		item.ObjectID,
	).Scan(&item.ID)

	if isUniqueViolation(err) {
		return apperrors.ErrConstraintViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create starred item: %w", err)
	}
	return nil
}

func (r *StarredItemRepository) Delete(ctx context.Context, userID int64, contentType, objectID string) error {
	query := `
		DELETE FROM starred_items
		WHERE user_id = $1 AND content_type = $2 AND object_id = $3`

	_, err := r.db.ExecContext(ctx, query, userID, contentType, objectID)
	if err != nil {
		return fmt.Errorf("failed to delete starred item: %w", err)
	}
	return nil
}

func (r *StarredItemRepository) ListByUser(ctx context.Context, userID int64) ([]models.StarredItem, error) {
	query := `
		SELECT id, user_id, content_type, object_id
		FROM starred_items
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list starred items: %w", err)
	}
	defer rows.Close()

	var items []models.StarredItem
	for rows.Next() {
		var item models.StarredItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ContentType,
			&item.ObjectID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan starred item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListObjectIDs returns the object IDs the user has starred for one
// content type. Used to annotate the catalog listings.
func (r *StarredItemRepository) ListObjectIDs(ctx context.Context, userID int64, contentType string) ([]string, error) {
	query := `
		SELECT object_id
		FROM starred_items
		WHERE user_id = $1 AND content_type = $2
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to list starred object ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan starred object id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
