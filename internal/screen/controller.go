package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"openway/internal/geo"
	"openway/internal/model"
	"openway/internal/repository"
	"openway/internal/service"
)

// ErrNotMounted is returned by actions on a controller that is not mounted.
var ErrNotMounted = errors.New("screen not mounted")

// DeviceResolver yields the device id. *device.Provider satisfies it.
type DeviceResolver interface {
	Resolve(ctx context.Context) (model.DeviceID, error)
}

// Deps are the collaborators shared by every controller.
type Deps struct {
	Device          DeviceResolver
	Themes          repository.ThemePreferenceRepository
	Permissions     geo.Permissions
	Positioner      geo.Positioner
	Alerter         geo.Alerter
	Weather         *service.WeatherService // optional
	PositionOptions model.PositionOptions
	Log             *zap.Logger
}

// Controller drives one screen instance. Each instance owns its theme and
// location state; nothing is shared with other screens.
type Controller struct {
	spec     Spec
	device   DeviceResolver
	theme    *service.ThemeService
	location *service.LocationService
	weather  *service.WeatherService
	log      *zap.Logger

	mu        sync.Mutex
	mounted   bool
	unmounted bool
	frozen    model.ScreenState
	fix       *model.LocationFix
	report    *model.WeatherResponse
}

func New(name string, deps Deps) (*Controller, error) {
	spec, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if deps.Device == nil || deps.Themes == nil {
		return nil, fmt.Errorf("screen %s: device resolver and theme store are required", spec.Name)
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("screen", string(spec.Name)))

	c := &Controller{
		spec:   spec,
		device: deps.Device,
		theme:  service.NewThemeService(deps.Themes, log),
		log:    log,
	}

	if spec.UsesLocation {
		if deps.Permissions == nil || deps.Positioner == nil {
			return nil, fmt.Errorf("screen %s: permissions and positioner are required", spec.Name)
		}
		opts := deps.PositionOptions
		if opts.Timeout <= 0 {
			opts = model.DefaultPositionOptions()
		}
		c.location = service.NewLocationService(deps.Permissions, deps.Positioner, deps.Alerter, log,
			service.WithPositionOptions(opts),
			service.WithDeniedNotice(spec.DeniedNotice),
		)
	}
	if spec.UsesWeather {
		c.weather = deps.Weather
	}
	return c, nil
}

// Mount resolves the device id and loads the theme while, independently,
// acquiring location and weather when the screen uses them. Only an
// identity failure is returned; the screen stays in light mode then.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	c.mounted = true
	c.mu.Unlock()

	var g errgroup.Group

	g.Go(func() error {
		id, err := c.device.Resolve(ctx)
		if err != nil {
			return fmt.Errorf("resolve device id: %w", err)
		}
		if c.theme.SetDeviceID(id) {
			c.theme.Load(ctx)
		}
		return nil
	})

	if c.location != nil {
		g.Go(func() error {
			fix, err := c.location.Acquire(ctx)
			if err != nil {
				return nil
			}
			c.mu.Lock()
			if !c.unmounted {
				c.fix = fix
			}
			c.mu.Unlock()
			return nil
		})
	}

	if c.weather != nil {
		g.Go(func() error {
			report, err := c.weather.Tokyo(ctx)
			if err != nil {
				c.log.Warn("fetch weather failed", zap.Error(err))
				return nil
			}
			c.mu.Lock()
			if !c.unmounted {
				c.report = report
			}
			c.mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Unmount freezes the screen state. Results that land afterwards are
// discarded.
func (c *Controller) Unmount() {
	state := c.State()
	state.Mounted = false

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted {
		return
	}
	c.unmounted = true
	c.frozen = state
}

// ToggleTheme flips the screen's mode and persists it.
func (c *Controller) ToggleTheme(ctx context.Context) (bool, error) {
	c.mu.Lock()
	live := c.mounted && !c.unmounted
	c.mu.Unlock()
	if !live {
		return false, ErrNotMounted
	}
	return c.theme.Toggle(ctx), nil
}

// State returns a snapshot of what the screen would render.
func (c *Controller) State() model.ScreenState {
	c.mu.Lock()
	if c.unmounted {
		s := c.frozen
		c.mu.Unlock()
		return s
	}
	mounted := c.mounted
	fix := c.fix
	report := c.report
	c.mu.Unlock()

	dark := c.theme.IsDarkMode()
	state := model.ScreenState{
		Screen:     c.spec.Name,
		DeviceID:   c.theme.DeviceID(),
		IsDarkMode: dark,
		Palette:    c.spec.Palette(dark),
		Location:   fix,
		Weather:    report,
		Mounted:    mounted,
	}
	if c.location != nil {
		state.Loading = c.location.Loading()
		state.LocationState = c.location.State()
	}
	return state
}

func (c *Controller) Spec() Spec {
	return c.spec
}
