package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable and the API key works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.Client.Ping(ctx)
			})
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user that owns the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.Client.Me(ctx)
			})
		},
	}
}
