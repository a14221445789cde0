package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"openway/internal/model"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

type postgresThemeRepository struct {
	db *sqlx.DB
}

func NewPostgresThemeRepository(db *sqlx.DB) ThemePreferenceRepository {
	return &postgresThemeRepository{db: db}
}

func (r *postgresThemeRepository) Get(ctx context.Context, id model.DeviceID) (*model.ThemePreference, error) {
	query := `
		SELECT device_id, is_dark_mode, created_at, updated_at
		FROM theme_preferences
		WHERE device_id = $1
	`
	var pref model.ThemePreference
	err := r.db.GetContext(ctx, &pref, query, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get theme preference: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get theme preference: %w", err)
	}
	return &pref, nil
}

// Create inserts a new row. Unlike an ON CONFLICT upsert, an existing row
// is reported as model.ErrConflict so the caller can fall back to Update.
func (r *postgresThemeRepository) Create(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	query := `
		INSERT INTO theme_preferences (device_id, is_dark_mode, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	_, err := r.db.ExecContext(ctx, query, id.String(), isDarkMode)
	if isUniqueViolation(err) {
		return fmt.Errorf("create theme preference: %w", model.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create theme preference: %w", err)
	}
	return nil
}

func (r *postgresThemeRepository) Update(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	query := `
		UPDATE theme_preferences
		SET is_dark_mode = $2, updated_at = NOW()
		WHERE device_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id.String(), isDarkMode)
	if err != nil {
		return fmt.Errorf("update theme preference: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update theme preference: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update theme preference: %w", model.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
