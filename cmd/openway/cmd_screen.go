package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"openway/internal/app"
	"openway/internal/screen"
)

var toggleOnMount bool

var screenCmd = &cobra.Command{
	Use:   "screen <name>",
	Short: "Mount a screen and print what it would render",
	Long: fmt.Sprintf(`Mount one of the app screens (%s).

Mounting resolves the device id, loads the stored theme and, for screens that
show a map, asks for location permission and reads a fix.`, screenNames()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		stores, err := openStores(ctx)
		if err != nil {
			return err
		}
		defer stores.Close()

		perms, positioner, alerter := locationDeps(cmd)
		services := app.NewServices(cfg, stores, false, log)

		c, err := screen.New(args[0], screen.Deps{
			Device:          deviceProvider(),
			Themes:          stores.Themes,
			Permissions:     perms,
			Positioner:      positioner,
			Alerter:         alerter,
			Weather:         services.Weather,
			PositionOptions: positionOptions(),
			Log:             log,
		})
		if err != nil {
			return err
		}

		if err := c.Mount(ctx); err != nil {
			log.Warn("device id unavailable, using defaults", zap.Error(err))
		}
		defer c.Unmount()

		if toggleOnMount {
			if _, err := c.ToggleTheme(ctx); err != nil {
				return err
			}
		}
		return printScreen(cmd.OutOrStdout(), c.State())
	},
}

func init() {
	screenCmd.Flags().BoolVar(&toggleOnMount, "toggle", false, "toggle the theme after mounting")
}

func screenNames() string {
	names := screen.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}
