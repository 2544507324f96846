package config

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View the profile file",
		Long:  `Displays the content of the profile file as YAML, with API keys redacted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLocal(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ViewConfig()
			})
		},
	}
}
