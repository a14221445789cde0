package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"openway/internal/app"
	"openway/internal/model"
)

var (
	weatherLat float64
	weatherLon float64
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Print current weather (Tokyo unless --lat and --lon are given)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
		if latSet != lonSet {
			return fmt.Errorf("--lat and --lon must be given together")
		}
		if weatherLat < -90 || weatherLat > 90 || weatherLon < -180 || weatherLon > 180 {
			return fmt.Errorf("coordinates out of range: %v,%v", weatherLat, weatherLon)
		}

		stores := optionalStores(ctx)
		defer stores.Close()
		weather := app.NewServices(cfg, stores, false, log).Weather

		var (
			resp *model.WeatherResponse
			err  error
		)
		if latSet {
			resp, err = weather.Current(ctx, weatherLat, weatherLon)
		} else {
			resp, err = weather.Tokyo(ctx)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, resp)
		}
		fmt.Fprintf(out, "location:  %.4f,%.4f\n", resp.Latitude, resp.Longitude)
		printWeatherLines(out, resp)
		return nil
	},
}

func init() {
	weatherCmd.Flags().Float64Var(&weatherLat, "lat", 0, "latitude")
	weatherCmd.Flags().Float64Var(&weatherLon, "lon", 0, "longitude")
}
