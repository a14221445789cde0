package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"openway/internal/geo"
	"openway/internal/model"
)

// Alert shown when location permission is refused.
const (
	PermissionDeniedTitle   = "Permission Denied"
	PermissionDeniedMessage = "Location access is required to show your position."
)

// LocationService runs one-shot location acquisitions behind a permission
// prompt and exposes the state of the latest attempt.
type LocationService struct {
	perms      geo.Permissions
	positioner geo.Positioner
	alerter    geo.Alerter
	opts       model.PositionOptions
	denied     model.Notice
	log        *zap.Logger

	mu      sync.Mutex
	state   model.AcquireState
	loading bool
	fix     *model.LocationFix
}

// LocationOption customises a LocationService.
type LocationOption func(*LocationService)

// WithPositionOptions overrides the fix request parameters.
func WithPositionOptions(opts model.PositionOptions) LocationOption {
	return func(s *LocationService) { s.opts = opts }
}

// WithDeniedNotice overrides the alert shown on permission denial.
func WithDeniedNotice(n model.Notice) LocationOption {
	return func(s *LocationService) { s.denied = n }
}

func NewLocationService(perms geo.Permissions, positioner geo.Positioner, alerter geo.Alerter, log *zap.Logger, opts ...LocationOption) *LocationService {
	if alerter == nil {
		alerter = geo.NopAlerter{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &LocationService{
		perms:      perms,
		positioner: positioner,
		alerter:    alerter,
		opts:       model.DefaultPositionOptions(),
		denied:     model.Notice{Title: PermissionDeniedTitle, Message: PermissionDeniedMessage},
		log:        log.Named("location"),
		state:      model.AcquireIdle,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Acquire asks for permission and then reads a single fix. Denial returns
// ErrPermissionDenied after alerting the user; a failed or timed-out fix
// returns ErrLocationUnavailable. Loading is false once Acquire returns.
func (s *LocationService) Acquire(ctx context.Context) (*model.LocationFix, error) {
	s.mu.Lock()
	s.loading = true
	s.fix = nil
	s.mu.Unlock()
	s.transition(model.AcquireRequestingPermission)

	granted, err := s.perms.Request(ctx)
	if err != nil {
		s.log.Warn("location permission request failed", zap.Error(err))
	}
	if !granted {
		s.finish(model.AcquireDenied, nil)
		s.alerter.Alert(s.denied.Title, s.denied.Message)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrPermissionDenied, err)
		}
		return nil, model.ErrPermissionDenied
	}
	s.transition(model.AcquireGranted)

	timeout := s.opts.Timeout
	if timeout <= 0 {
		timeout = model.DefaultFixTimeout
	}
	fixCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fix, err := s.positioner.CurrentPosition(fixCtx, s.opts)
	if err != nil {
		s.log.Warn("location fix failed", zap.Duration("timeout", timeout), zap.Error(err))
		s.finish(model.AcquireFixFailed, nil)
		return nil, fmt.Errorf("%w: %w", model.ErrLocationUnavailable, err)
	}

	s.log.Debug("location fix obtained", zap.Stringer("fix", fix))
	s.finish(model.AcquireFixObtained, &fix)
	return &fix, nil
}

func (s *LocationService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *LocationService) State() model.AcquireState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Fix returns the fix from the latest successful attempt, if any.
func (s *LocationService) Fix() *model.LocationFix {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fix == nil {
		return nil
	}
	f := *s.fix
	return &f
}

func (s *LocationService) transition(to model.AcquireState) {
	s.mu.Lock()
	s.state = to
	s.mu.Unlock()
}

func (s *LocationService) finish(to model.AcquireState, fix *model.LocationFix) {
	s.mu.Lock()
	s.state = to
	s.loading = false
	s.fix = fix
	s.mu.Unlock()
}
