package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newProjectCmd() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Browse projects",
		Long:  `Commands for listing and inspecting Redmine projects.`,
	}

	var limit, offset int
	projectListCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ListProjects(ctx, limit, offset)
			})
		},
	}
	app.AddPageFlags(projectListCmd, &limit, &offset)

	var id int
	var identifier string
	projectGetCmd := &cobra.Command{
		Use:   "get",
		Short: "Show one project",
		Long:  `Shows a project by numeric id (--id) or by identifier (--identifier).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.GetProject(ctx, id, identifier)
			})
		},
	}
	projectGetCmd.Flags().IntVar(&id, "id", 0, "Project id")
	projectGetCmd.Flags().StringVar(&identifier, "identifier", "", "Project identifier, e.g. my-project")

	projectCmd.AddCommand(projectListCmd, projectGetCmd)
	return projectCmd
}
