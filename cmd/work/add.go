package work

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newCreateCmd() *cobra.Command {
	var a app.TimeCreateArgs
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add", "log"},
		Short:   "Log time against an issue or a project",
		Long: `Logs time against exactly one of --issue or --project. --activity takes an
activity name (case-insensitive) or id; see 'rdm time activities list'.
--spent-on defaults to today.`,
		Example: `  rdm time create --issue 123 --hours 1.5 --activity Development --comment "Code review"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.CreateTimeEntry(ctx, a)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&a.Issue, "issue", 0, "Issue id")
	f.IntVar(&a.Project, "project", 0, "Project id, for time not tied to an issue")
	f.Float64Var(&a.Hours, "hours", 0, "Hours spent, e.g. 1.5")
	f.StringVar(&a.Activity, "activity", "", "Activity name or id")
	f.StringVar(&a.SpentOn, "spent-on", "", "Date the time was spent (YYYY-MM-DD)")
	f.StringVar(&a.Comment, "comment", "", "Short comment")
	f.IntVar(&a.User, "user", 0, "Log on behalf of this user id (requires permission)")
	return cmd
}
