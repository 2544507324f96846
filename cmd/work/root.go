package work

import (
	"github.com/spf13/cobra"
)

// NewWorkCmd builds the `time` command group, also reachable as `work`.
func NewWorkCmd() *cobra.Command {
	workCmd := &cobra.Command{
		Use:     "time",
		Aliases: []string{"work"},
		Short:   "Manage time entries",
		Long:    `Commands for logging, listing, correcting and deleting time spent on issues and projects.`,
	}
	workCmd.AddCommand(
		newActivitiesCmd(),
		newCreateCmd(),
		newListCmd(),
		newGetCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
	)
	return workCmd
}
