package config

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd builds the `config` command group.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rdm configuration",
		Long: `Commands for inspecting the effective configuration and editing the active
profile. Values resolve per field from --url/--api-key, then REDMINE_URL and
REDMINE_API_KEY, then the active profile.`,
	}
	configCmd.AddCommand(newShowCmd(), newViewCmd(), newSetCmd())
	return configCmd
}
