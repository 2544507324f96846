package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"redmine-cli/cmd/config"
	"redmine-cli/cmd/profile"
	"redmine-cli/cmd/work"
	"redmine-cli/internal/app"
	"redmine-cli/internal/apperr"
	"redmine-cli/internal/output"
	"redmine-cli/internal/redmine"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rdm",
		Short: "A CLI for interacting with Redmine",
		Long: `rdm is a command-line interface to the Redmine REST API, built for scripts
and agents. It manages issues, time entries, projects and users, and prints
Markdown by default or a JSON envelope with --format json.`,
		Version:       redmine.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(app.FlagFormat, "f", string(output.FormatMarkdown), "Output format: markdown or json")
	flags.String(app.FlagURL, "", "Redmine server URL (overrides REDMINE_URL and profiles)")
	flags.String(app.FlagAPIKey, "", "Redmine API key (overrides REDMINE_API_KEY and profiles)")
	flags.Bool(app.FlagDebug, false, "Log requests and retries to stderr")
	flags.Bool(app.FlagDryRun, false, "Print write requests instead of sending them")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Validation(err.Error())
	})

	rootCmd.AddCommand(
		newPingCmd(),
		newMeCmd(),
		config.NewConfigCmd(),
		profile.NewProfileCmd(),
		newProjectCmd(),
		newIssueCmd(),
		work.NewWorkCmd(),
		newUserCmd(),
		newTrackerCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Run executes args against a fresh command tree and returns the process
// exit code. Errors are rendered once, to rt.Stderr.
func Run(ctx context.Context, args []string, rt *app.Runtime) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(rt.Stdout)
	rootCmd.SetErr(rt.Stderr)

	err := rootCmd.ExecuteContext(app.WithRuntime(ctx, rt))
	if err == nil {
		return 0
	}

	e := apperr.From(err)
	name, _ := rootCmd.PersistentFlags().GetString(app.FlagFormat)
	format, ferr := output.ParseFormat(name)
	if ferr != nil {
		format = output.FormatMarkdown
	}
	output.RenderError(rt.Stderr, format, e)
	return e.ExitCode()
}

// Execute is called by main.main.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, os.Args[1:], app.DefaultRuntime())
}
