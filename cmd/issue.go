package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/app"
)

func newIssueCmd() *cobra.Command {
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage issues",
		Long:  `Commands for listing, searching, creating and updating Redmine issues.`,
	}
	issueCmd.AddCommand(newIssueListCmd(), newIssueGetCmd(), newIssueCreateCmd(), newIssueUpdateCmd())
	return issueCmd
}

func newIssueListCmd() *cobra.Command {
	var a app.IssueListArgs
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List or search issues",
		Long: `List issues matching the given filters. With --search, runs a full-text
search instead and fetches every matching issue; other filters except
--project are then ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.ListIssues(ctx, a)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&a.Project, "project", "p", "", "Project id or identifier")
	f.StringVar(&a.Status, "status", "", "Status id, or open, closed, *")
	f.StringVarP(&a.AssignedTo, "assigned-to", "a", "", "Assignee user id, or 'me'")
	f.StringVar(&a.Author, "author", "", "Author user id, or 'me'")
	f.StringVar(&a.Tracker, "tracker", "", "Tracker id")
	f.StringVar(&a.Subject, "subject", "", "Subject filter, e.g. '~login' for contains")
	f.StringVarP(&a.Search, "search", "s", "", "Full-text search query")
	f.StringArrayVar(&a.CustomFields, "cf", nil, "Custom field filter ID=VALUE (repeatable)")
	app.AddPageFlags(cmd, &a.Limit, &a.Offset)
	return cmd
}

func newIssueGetCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.GetIssue(ctx, id)
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "Issue id")
	return cmd
}

func newIssueCreateCmd() *cobra.Command {
	var a app.IssueCreateArgs
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.CreateIssue(ctx, a)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&a.Project, "project", 0, "Project id (required)")
	f.StringVar(&a.Subject, "subject", "", "Issue subject (required)")
	f.StringVar(&a.Description, "description", "", "Issue description")
	f.IntVar(&a.Tracker, "tracker", 0, "Tracker id")
	f.IntVar(&a.Status, "status", 0, "Status id")
	f.IntVar(&a.Priority, "priority", 0, "Priority id")
	f.IntVar(&a.AssignedTo, "assigned-to", 0, "Assignee user id")
	f.StringVar(&a.StartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&a.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	f.Float64Var(&a.EstimatedHours, "estimated-hours", 0, "Estimated hours")
	f.StringArrayVar(&a.CustomFields, "cf", nil, "Custom field value ID=VALUE (repeatable)")
	return cmd
}

func newIssueUpdateCmd() *cobra.Command {
	var (
		id                              int
		subject, description, notes     string
		startDate, dueDate              string
		tracker, status, priority, user int
		doneRatio                       int
		estimated                       float64
		cfs                             []string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an issue",
		Long:  `Updates only the fields given on the command line. --notes adds a journal comment.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.IssueUpdateArgs{
				ID:             id,
				Subject:        app.Changed(cmd, "subject", subject),
				Description:    app.Changed(cmd, "description", description),
				Tracker:        app.Changed(cmd, "tracker", tracker),
				Status:         app.Changed(cmd, "status", status),
				Priority:       app.Changed(cmd, "priority", priority),
				AssignedTo:     app.Changed(cmd, "assigned-to", user),
				StartDate:      app.Changed(cmd, "start-date", startDate),
				DueDate:        app.Changed(cmd, "due-date", dueDate),
				EstimatedHours: app.Changed(cmd, "estimated-hours", estimated),
				DoneRatio:      app.Changed(cmd, "done-ratio", doneRatio),
				Notes:          app.Changed(cmd, "notes", notes),
				CustomFields:   cfs,
			}
			return app.RunRemote(cmd, func(ctx context.Context, s *app.Session) (any, error) {
				return s.UpdateIssue(ctx, a)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&id, "id", 0, "Issue id")
	f.StringVar(&subject, "subject", "", "New subject")
	f.StringVar(&description, "description", "", "New description")
	f.IntVar(&tracker, "tracker", 0, "Tracker id")
	f.IntVar(&status, "status", 0, "Status id")
	f.IntVar(&priority, "priority", 0, "Priority id")
	f.IntVar(&user, "assigned-to", 0, "Assignee user id")
	f.StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&dueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	f.Float64Var(&estimated, "estimated-hours", 0, "Estimated hours")
	f.IntVar(&doneRatio, "done-ratio", 0, "Percent done (0-100)")
	f.StringVar(&notes, "notes", "", "Journal note to add")
	f.StringArrayVar(&cfs, "cf", nil, "Custom field value ID=VALUE (repeatable)")
	return cmd
}
