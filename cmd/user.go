package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Browse users",
		Long:  `Commands for listing and inspecting Redmine accounts. Listing users requires admin rights.`,
	}

	var status string
	var limit, offset int
	userListCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ListUsers(ctx, status, limit, offset)
			})
		},
	}
	userListCmd.Flags().StringVar(&status, "status", "", "Filter by status: active, registered or locked")
	app.AddPageFlags(userListCmd, &limit, &offset)

	var id int
	userGetCmd := &cobra.Command{
		Use:   "get",
		Short: "Show one user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.GetUser(ctx, id)
			})
		},
	}
	userGetCmd.Flags().IntVar(&id, "id", 0, "User id")

	userMeCmd := newMeCmd()
	userMeCmd.Short = "Show the user that owns the API key (same as `rdm me`)"

	userCmd.AddCommand(userListCmd, userGetCmd, userMeCmd)
	return userCmd
}
