package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"openway/internal/app"
	"openway/internal/model"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment <text>",
	Short: "Classify text as POSITIVE or NEGATIVE",
	Long: `Send text to the configured inference model and print the top label.

The result is added to the device's sentiment history when a history store
is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := deviceProvider().Resolve(ctx)
		if err != nil {
			log.Warn("device id unavailable, history entry will have none", zap.Error(err))
		}

		stores := optionalStores(ctx)
		defer stores.Close()
		svc := app.NewServices(cfg, stores, false, log).Sentiment

		label, err := svc.Analyze(ctx, id, strings.Join(args, " "))
		if errors.Is(err, model.ErrEmptyText) {
			return errors.New("please enter text before analyzing")
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), model.SentimentResponse{Sentiment: label})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sentiment: %s\n", label)
		return nil
	},
}
