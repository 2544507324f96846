package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Browse project versions",
		Long:  `Commands for the versions (milestones) of a Redmine project.`,
	}

	var project string
	versionListCmd := &cobra.Command{
		Use:   "list",
		Short: "List versions of a project",
		Long:  `Lists all versions of a project, including versions shared with it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ListVersions(ctx, project)
			})
		},
	}
	versionListCmd.Flags().StringVarP(&project, "project", "p", "", "Project id or identifier")

	versionCmd.AddCommand(versionListCmd)
	return versionCmd
}
