package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newTrackerCmd() *cobra.Command {
	trackerCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Browse issue trackers",
		Long:  `Commands for the trackers (Bug, Feature, Support, ...) configured in Redmine.`,
	}

	trackerListCmd := &cobra.Command{
		Use:   "list",
		Short: "List available trackers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.Client.ListTrackers(ctx)
			})
		},
	}

	trackerCmd.AddCommand(trackerListCmd)
	return trackerCmd
}
