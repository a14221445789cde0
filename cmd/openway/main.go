package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"openway/internal/app"
	"openway/internal/config"
	"openway/internal/device"
	"openway/internal/geo"
	"openway/internal/logger"
	"openway/internal/model"
)

var (
	// Global flags
	deviceIDFlag string
	platformFlag string
	assumeYes    bool
	verbose      bool
	jsonOutput   bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "openway",
	Short: "OpenWay device shell",
	Long: `openway runs the OpenWay app core from a terminal.

It resolves this machine's device id, keeps the dark-mode preference in the
configured store, asks for location permission and reads a one-shot fix,
and talks to the weather and sentiment APIs used by the app screens.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log, err = logger.New(level, "console")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceIDFlag, "device-id", "", "use this device id instead of resolving one")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "", "permission style to emulate: ios or android (default from DEVICE_PLATFORM)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "grant location permission without prompting")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(screenCmd, themeCmd, locateCmd, weatherCmd, sentimentCmd, deviceCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// deviceProvider resolves ids from the flag, then OPENWAY_DEVICE_ID, then
// the host, then a per-install id file.
func deviceProvider() *device.Provider {
	var chain device.ChainSource
	if deviceIDFlag != "" {
		chain = append(chain, device.StaticSource(deviceIDFlag))
	}
	chain = append(chain,
		device.EnvSource{},
		device.HostSource{},
		device.InstallSource{Path: cfg.DeviceIDFile},
	)
	return device.NewProvider(chain, log)
}

// openStores validates the store settings and connects.
func openStores(ctx context.Context) (*app.Stores, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.OpenStores(ctx, cfg, log)
}

// locationDeps builds the permission prompt and positioner for this host.
func locationDeps(cmd *cobra.Command) (geo.Permissions, geo.Positioner, geo.Alerter) {
	platform := cfg.DevicePlatform
	if platformFlag != "" {
		platform = platformFlag
	}

	prompt := geo.NewTerminalPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())
	perms := geo.PlatformPermissions{Platform: model.ParsePlatform(platform), Authorizer: prompt, Requester: prompt}
	if assumeYes {
		perms.Authorizer = geo.StaticPrompt(model.PermissionGranted)
		perms.Requester = geo.StaticPrompt(model.PermissionGranted)
	}

	positioner := geo.NewCachedPositioner(geo.NewIPPositioner(cfg.GeoIPURL, nil, log))
	return perms, positioner, prompt
}

func positionOptions() model.PositionOptions {
	opts := model.DefaultPositionOptions()
	if cfg.LocationTimeout > 0 {
		opts.Timeout = cfg.LocationTimeout
	}
	if cfg.LocationMaxAge >= 0 {
		opts.MaximumAge = cfg.LocationMaxAge
	}
	return opts
}

// optionalStores opens the stores when configured. Commands that only read
// upstream APIs still run without them.
func optionalStores(ctx context.Context) *app.Stores {
	stores, err := openStores(ctx)
	if err != nil {
		log.Debug("running without stores", zap.Error(err))
		return &app.Stores{}
	}
	return stores
}
