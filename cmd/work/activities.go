package work

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newActivitiesCmd() *cobra.Command {
	activitiesCmd := &cobra.Command{
		Use:   "activities",
		Short: "Time entry activities",
	}

	var refresh bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List time entry activities",
		Long:  `Lists activities from the local cache, refreshed from the server once a day or with --refresh.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.Activities(ctx, refresh)
			})
		},
	}
	listCmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore the cache and fetch from the server")

	activitiesCmd.AddCommand(listCmd)
	return activitiesCmd
}
