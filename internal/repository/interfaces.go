package repository

import (
	"context"

	"openway/internal/model"
)

// ThemePreferenceRepository stores one dark-mode document per device.
//
// The upsert protocol above it depends on these exact failure modes:
// Get and Update fail with model.ErrNotFound when no document exists,
// Create fails with model.ErrConflict when one already does.
type ThemePreferenceRepository interface {
	Get(ctx context.Context, id model.DeviceID) (*model.ThemePreference, error)
	Create(ctx context.Context, id model.DeviceID, isDarkMode bool) error
	Update(ctx context.Context, id model.DeviceID, isDarkMode bool) error
}

// SentimentHistoryRepository is write-only from the app's point of view.
type SentimentHistoryRepository interface {
	Create(ctx context.Context, record *model.SentimentRecord) error
}
