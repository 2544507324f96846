package work

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newGetCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one time entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.GetTimeEntry(ctx, id)
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "Time entry id")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var (
		id                        int
		hours                     float64
		activity, spentOn, remark string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Correct a time entry",
		Long:  `Changes only the fields given on the command line and prints the entry as stored afterwards.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.TimeUpdateArgs{
				ID:       id,
				Hours:    app.Changed(cmd, "hours", hours),
				Activity: app.Changed(cmd, "activity", activity),
				SpentOn:  app.Changed(cmd, "spent-on", spentOn),
				Comment:  app.Changed(cmd, "comment", remark),
			}
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.UpdateTimeEntry(ctx, a)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&id, "id", 0, "Time entry id")
	f.Float64Var(&hours, "hours", 0, "Hours spent")
	f.StringVar(&activity, "activity", "", "Activity name or id")
	f.StringVar(&spentOn, "spent-on", "", "Date (YYYY-MM-DD)")
	f.StringVar(&remark, "comment", "", "Comment")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a time entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.DeleteTimeEntry(ctx, id)
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "Time entry id")
	return cmd
}
