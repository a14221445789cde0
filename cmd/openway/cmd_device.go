package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Device identity",
}

var deviceIDCmd = &cobra.Command{
	Use:   "id",
	Short: "Print the sanitized device id used as the preference key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := deviceProvider().Resolve(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	deviceCmd.AddCommand(deviceIDCmd)
}
