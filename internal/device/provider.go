package device

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"openway/internal/logger"
	"openway/internal/model"
)

// Source supplies the raw platform device identifier.
type Source interface {
	UniqueID(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) UniqueID(ctx context.Context) (string, error) {
	return f(ctx)
}

// Provider resolves and memoizes the sanitized device id.
// Once an id has been resolved the source is never consulted again.
type Provider struct {
	source Source
	log    *zap.Logger

	mu sync.Mutex
	id model.DeviceID
}

func NewProvider(source Source, log *zap.Logger) *Provider {
	return &Provider{
		source: source,
		log:    logger.OrNop(log).Named("device"),
	}
}

// Resolve returns the sanitized device id. On failure the error is logged
// and returned, and the cached id stays empty.
func (p *Provider) Resolve(ctx context.Context) (model.DeviceID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.id.IsZero() {
		return p.id, nil
	}

	raw, err := p.source.UniqueID(ctx)
	if err != nil {
		p.log.Error("fetch device id", zap.Error(err))
		return "", fmt.Errorf("fetch device id: %w", err)
	}

	id := model.SanitizeDeviceID(raw)
	if id.IsZero() {
		p.log.Warn("device id empty after sanitizing", zap.Int("raw_len", len(raw)))
		return "", model.ErrDeviceUnresolved
	}

	p.id = id
	p.log.Debug("device id resolved", zap.String("device_id", id.String()))
	return id, nil
}

// Current returns the resolved id, or the empty sentinel.
func (p *Provider) Current() model.DeviceID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}
