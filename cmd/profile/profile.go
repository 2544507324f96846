package profile

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

// NewProfileCmd builds the `profile` command group.
func NewProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage server profiles",
		Long:  `Commands for storing several Redmine servers and switching between them.`,
	}
	profileCmd.AddCommand(newAddCmd(), newUseCmd(), newListCmd(), newDeleteCmd())
	return profileCmd
}

func newAddCmd() *cobra.Command {
	var name, url, apiKey string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a profile",
		Long:  `Stores a profile. The first profile added becomes the active one.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLocal(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.AddProfile(name, url, apiKey)
			})
		},
	}
	// --url and --api-key are root flags; local flags of the same name shadow
	// them for this command only.
	cmd.Flags().StringVar(&name, "name", "", "Profile name")
	cmd.Flags().StringVar(&url, "url", "", "Redmine server URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Redmine API key")
	return cmd
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [name]",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLocal(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.UseProfile(args[0])
			})
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLocal(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ListProfiles()
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLocal(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.DeleteProfile(name)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Profile name")
	return cmd
}
