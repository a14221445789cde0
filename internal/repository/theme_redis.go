package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"openway/internal/model"
)

// ThemeKeyPrefix is the key prefix for stored preferences.
const ThemeKeyPrefix = "theme:device:"

type redisThemeValue struct {
	IsDarkMode bool      `json:"isDarkMode"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type redisThemeRepository struct {
	client *redis.Client
}

// NewRedisThemeRepository stores each preference as a JSON string.
// SET NX gives create semantics and SET XX gives update semantics.
func NewRedisThemeRepository(client *redis.Client) ThemePreferenceRepository {
	return &redisThemeRepository{client: client}
}

func themeKey(id model.DeviceID) string {
	return ThemeKeyPrefix + id.String()
}

func (r *redisThemeRepository) Get(ctx context.Context, id model.DeviceID) (*model.ThemePreference, error) {
	raw, err := r.client.Get(ctx, themeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get theme preference: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get theme preference: %w", err)
	}

	var v redisThemeValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode theme preference: %w", err)
	}
	return &model.ThemePreference{
		ID:         id,
		IsDarkMode: v.IsDarkMode,
		UpdatedAt:  v.UpdatedAt,
	}, nil
}

func (r *redisThemeRepository) Create(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	payload, err := json.Marshal(redisThemeValue{IsDarkMode: isDarkMode, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode theme preference: %w", err)
	}

	ok, err := r.client.SetNX(ctx, themeKey(id), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("create theme preference: %w", err)
	}
	if !ok {
		return fmt.Errorf("create theme preference: %w", model.ErrConflict)
	}
	return nil
}

func (r *redisThemeRepository) Update(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	payload, err := json.Marshal(redisThemeValue{IsDarkMode: isDarkMode, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode theme preference: %w", err)
	}

	ok, err := r.client.SetXX(ctx, themeKey(id), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("update theme preference: %w", err)
	}
	if !ok {
		return fmt.Errorf("update theme preference: %w", model.ErrNotFound)
	}
	return nil
}
