package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"openway/internal/model"
)

// MemoryThemeRepository keeps preferences in a map. It honours the same
// NotFound/Conflict contract as the remote backends and counts calls.
type MemoryThemeRepository struct {
	mu    sync.Mutex
	docs  map[model.DeviceID]model.ThemePreference
	calls map[string]int
}

func NewMemoryThemeRepository() *MemoryThemeRepository {
	return &MemoryThemeRepository{
		docs:  make(map[model.DeviceID]model.ThemePreference),
		calls: make(map[string]int),
	}
}

func (r *MemoryThemeRepository) Get(ctx context.Context, id model.DeviceID) (*model.ThemePreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["get"]++

	pref, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("get theme preference: %w", model.ErrNotFound)
	}
	return &pref, nil
}

func (r *MemoryThemeRepository) Create(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["create"]++

	if _, ok := r.docs[id]; ok {
		return fmt.Errorf("create theme preference: %w", model.ErrConflict)
	}
	now := time.Now().UTC()
	r.docs[id] = model.ThemePreference{ID: id, IsDarkMode: isDarkMode, CreatedAt: now, UpdatedAt: now}
	return nil
}

func (r *MemoryThemeRepository) Update(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["update"]++

	pref, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("update theme preference: %w", model.ErrNotFound)
	}
	pref.IsDarkMode = isDarkMode
	pref.UpdatedAt = time.Now().UTC()
	r.docs[id] = pref
	return nil
}

// Calls returns how many times op ("get", "create", "update") was invoked.
func (r *MemoryThemeRepository) Calls(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

// MemorySentimentRepository collects records in order. A record whose id
// was already written is dropped.
type MemorySentimentRepository struct {
	mu      sync.Mutex
	records []model.SentimentRecord
}

func (r *MemorySentimentRepository) Create(ctx context.Context, record *model.SentimentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID != "" {
		for _, existing := range r.records {
			if existing.ID == record.ID {
				return nil
			}
		}
	}
	r.records = append(r.records, *record)
	return nil
}

// Records returns a copy of what was written.
func (r *MemorySentimentRepository) Records() []model.SentimentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.SentimentRecord(nil), r.records...)
}
