package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"openway/internal/model"
	"openway/internal/repository"
)

// ThemeService holds one screen's dark-mode state and keeps the stored
// preference in step with it.
type ThemeService struct {
	repo repository.ThemePreferenceRepository
	log  *zap.Logger

	mu       sync.Mutex
	deviceID model.DeviceID
	darkMode bool
	seq      uint64

	// writeMu keeps each create/update pair strictly in sequence.
	writeMu sync.Mutex
}

func NewThemeService(repo repository.ThemePreferenceRepository, log *zap.Logger) *ThemeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ThemeService{repo: repo, log: log.Named("theme")}
}

// SetDeviceID re-keys the service. It reports whether the id changed, in
// which case the caller should run Load again.
func (s *ThemeService) SetDeviceID(id model.DeviceID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deviceID == id {
		return false
	}
	s.deviceID = id
	return true
}

func (s *ThemeService) DeviceID() model.DeviceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceID
}

func (s *ThemeService) IsDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// Load fetches the stored preference. It does nothing until a device id is
// set; a missing document leaves the current mode alone, and so does a read
// that a Toggle or Upsert overtook.
func (s *ThemeService) Load(ctx context.Context) {
	s.mu.Lock()
	id := s.deviceID
	seq := s.seq
	s.mu.Unlock()
	if id.IsZero() {
		return
	}

	pref, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.log.Debug("no stored theme preference", zap.String("device_id", id.String()))
			return
		}
		s.log.Warn("load theme preference failed", zap.String("device_id", id.String()), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A toggle or upsert since the read started owns the mode now.
	if s.deviceID != id || s.seq != seq {
		s.log.Debug("discarding superseded theme read", zap.String("device_id", id.String()))
		return
	}
	s.darkMode = pref.IsDarkMode
}

// Toggle flips the mode before touching the store and returns the new
// value. Store failures never roll the flip back.
func (s *ThemeService) Toggle(ctx context.Context) bool {
	s.mu.Lock()
	next := !s.darkMode
	s.darkMode = next
	id := s.deviceID
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.upsert(ctx, id, next, seq)
	return next
}

// Upsert writes value for id: create first, update on conflict. Errors are
// logged and dropped.
func (s *ThemeService) Upsert(ctx context.Context, id model.DeviceID, value bool) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.upsert(ctx, id, value, seq)
}

func (s *ThemeService) upsert(ctx context.Context, id model.DeviceID, value bool, seq uint64) {
	if id.IsZero() {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// A newer write is already queued behind us; it carries the final value.
	s.mu.Lock()
	stale := seq < s.seq
	s.mu.Unlock()
	if stale {
		s.log.Debug("skipping superseded theme write", zap.String("device_id", id.String()), zap.Uint64("seq", seq))
		return
	}

	log := s.log.With(zap.String("device_id", id.String()), zap.Bool("is_dark_mode", value))

	err := s.repo.Create(ctx, id, value)
	if err == nil {
		log.Debug("theme preference created")
		return
	}
	if !errors.Is(err, model.ErrConflict) {
		log.Error("save theme preference failed", zap.Error(err))
		return
	}

	if err := s.repo.Update(ctx, id, value); err != nil {
		log.Error("update theme preference failed", zap.Error(err))
		return
	}
	log.Debug("theme preference updated")
}
