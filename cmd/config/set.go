package config

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a value on the active profile (url or api-key)",
		Long:  `Sets url or api-key on the active profile. When no profile exists, a profile named "default" is created and activated.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLocal(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.SetConfigValue(args[0], args[1])
			})
		},
	}
}
