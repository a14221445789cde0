package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"openway/internal/model"
	"openway/internal/service"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change this device's dark-mode preference",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTheme(cmd, func(svc *service.ThemeService) {})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip between light and dark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTheme(cmd, func(svc *service.ThemeService) {
			svc.Toggle(cmd.Context())
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <true|false>",
	Short: "Store an explicit dark-mode value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dark, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("invalid value %q: want true or false", args[0])
		}
		return runTheme(cmd, func(svc *service.ThemeService) {
			svc.Upsert(cmd.Context(), svc.DeviceID(), dark)
			svc.Load(cmd.Context())
		})
	},
}

func init() {
	themeCmd.AddCommand(themeShowCmd, themeToggleCmd, themeSetCmd)
}

func runTheme(cmd *cobra.Command, action func(svc *service.ThemeService)) error {
	ctx := cmd.Context()

	id, err := deviceProvider().Resolve(ctx)
	if err != nil {
		return err
	}

	stores, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer stores.Close()

	svc := service.NewThemeService(stores.Themes, log)
	svc.SetDeviceID(id)
	svc.Load(ctx)
	action(svc)

	resp := model.ThemeResponse{DeviceID: svc.DeviceID(), IsDarkMode: svc.IsDarkMode()}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.DeviceID, modeName(resp.IsDarkMode))
	return nil
}
