package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"openway/internal/model"
	"openway/internal/service"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Ask for location permission and read one fix",
	Long: `Run the same permission prompt and one-shot fix the map screens use.

Without a fix the map falls back to the default region, which is printed
instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		perms, positioner, alerter := locationDeps(cmd)
		svc := service.NewLocationService(perms, positioner, alerter, log,
			service.WithPositionOptions(positionOptions()))

		fix, err := svc.Acquire(cmd.Context())
		out := cmd.OutOrStdout()

		if jsonOutput {
			return printJSON(out, struct {
				State model.AcquireState `json:"state"`
				Fix   *model.LocationFix `json:"fix,omitempty"`
			}{svc.State(), fix})
		}

		switch {
		case err == nil:
			fmt.Fprintf(out, "%s (accuracy %.0fm)\n", fix, fix.Accuracy)
		case errors.Is(err, model.ErrPermissionDenied):
			fmt.Fprintln(out, "permission denied")
		default:
			log.Sugar().Warnf("no fix: %v", err)
			fmt.Fprintf(out, "no fix, showing default region %.5f,%.5f\n", model.DefaultLatitude, model.DefaultLongitude)
		}
		return nil
	},
}
