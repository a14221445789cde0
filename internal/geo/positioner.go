package geo

import (
	"context"
	"sync"
	"time"

	"openway/internal/model"
)

// Positioner produces one position reading. Implementations must honour
// ctx cancellation; the caller enforces opts.Timeout through ctx.
type Positioner interface {
	CurrentPosition(ctx context.Context, opts model.PositionOptions) (model.LocationFix, error)
}

// PositionerFunc adapts a function to Positioner.
type PositionerFunc func(ctx context.Context, opts model.PositionOptions) (model.LocationFix, error)

func (f PositionerFunc) CurrentPosition(ctx context.Context, opts model.PositionOptions) (model.LocationFix, error) {
	return f(ctx, opts)
}

// StaticPositioner always reports the same coordinates, stamped with the
// time of the request.
type StaticPositioner struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

func (p StaticPositioner) CurrentPosition(ctx context.Context, opts model.PositionOptions) (model.LocationFix, error) {
	if err := ctx.Err(); err != nil {
		return model.LocationFix{}, err
	}
	return model.LocationFix{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  p.Accuracy,
		Timestamp: time.Now().UTC(),
	}, nil
}

// CachedPositioner serves the last fix while it is younger than
// opts.MaximumAge and asks the wrapped Positioner otherwise.
type CachedPositioner struct {
	next Positioner
	now  func() time.Time

	mu   sync.Mutex
	last *model.LocationFix
}

func NewCachedPositioner(next Positioner) *CachedPositioner {
	return &CachedPositioner{next: next, now: time.Now}
}

func (p *CachedPositioner) CurrentPosition(ctx context.Context, opts model.PositionOptions) (model.LocationFix, error) {
	p.mu.Lock()
	if p.last != nil && opts.MaximumAge > 0 && p.last.Age(p.now()) <= opts.MaximumAge {
		fix := *p.last
		p.mu.Unlock()
		return fix, nil
	}
	p.mu.Unlock()

	fix, err := p.next.CurrentPosition(ctx, opts)
	if err != nil {
		return model.LocationFix{}, err
	}
	if fix.Timestamp.IsZero() {
		fix.Timestamp = p.now().UTC()
	}

	p.mu.Lock()
	p.last = &fix
	p.mu.Unlock()
	return fix, nil
}
