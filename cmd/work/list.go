package work

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newListCmd() *cobra.Command {
	var a app.TimeListArgs
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		Long: `Lists time entries matching the filters. --group-by partitions the page by
user, project, activity, issue, spent_on (or date) or cf_<id> and prints a
subtotal per group.`,
		Example: `  rdm time list --user me --from 2024-05-01 --to 2024-05-31 --group-by issue`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ListTimeEntries(ctx, a)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&a.Project, "project", "p", "", "Project id or identifier")
	f.IntVar(&a.Issue, "issue", 0, "Issue id")
	f.StringVarP(&a.User, "user", "u", "", "User id, or 'me'")
	f.StringVar(&a.From, "from", "", "First day (YYYY-MM-DD)")
	f.StringVar(&a.To, "to", "", "Last day (YYYY-MM-DD)")
	f.StringArrayVar(&a.CustomFields, "cf", nil, "Custom field filter ID=VALUE (repeatable)")
	f.StringVarP(&a.GroupBy, "group-by", "g", "", "Group by user, project, activity, issue, spent_on or cf_<id>")
	app.AddPageFlags(cmd, &a.Limit, &a.Offset)
	return cmd
}
