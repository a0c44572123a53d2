// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/karas-cli/internal/config"
)

// envVars lists the environment variables that override the config file.
var envVars = []string{"KARAS_HEADING_LEVEL", "KARAS_FORMAT", "KARAS_DISABLED_PLUGINS"}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage karas configuration",
		Long:  `Commands for viewing, testing, and clearing karas configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
