package config

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration (hiding the API key)",
		Long:  `Displays the URL and a redacted API key that API commands would use, and where they came from.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ShowConfig(), nil
			})
		},
	}
}
