package main

import (
	"fmt"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-showcase"
)

func newRefreshCommand(opts *cliOptions, v *viper.Viper) *cobra.Command {
	var (
		reason  string
		retries int
	)
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Invalidate the snapshot cache and refetch the content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := buildModule(opts, v)
			if err != nil {
				return err
			}
			defer module.Close()

			sub := dispatcher.SubscribeCommand(module.Container().RefreshHandler(), runner.WithMaxRetries(retries))
			defer sub.Unsubscribe()

			msg := showcase.RefreshCommand{Reason: reason, Reload: true}
			if err := dispatcher.Dispatch(cmd.Context(), msg); err != nil {
				return fmt.Errorf("refresh snapshot: %w", err)
			}
			view := module.Session().View()
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot refreshed: %d items\n", view.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "cli", "reason recorded with the refresh")
	cmd.Flags().IntVar(&retries, "retries", 2, "retries when the reload fails")
	return cmd
}
