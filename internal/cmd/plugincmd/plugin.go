// Package plugincmd provides plugin inspection commands.
package plugincmd

import (
	"github.com/spf13/cobra"
)

// NewCmdPlugin creates the plugin command.
func NewCmdPlugin() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugin",
		Aliases: []string{"plugins"},
		Short:   "Inspect bundled plugins",
		Long:    `Commands for inspecting the plugins available to [[name]] and [[[name]]] calls.`,
	}

	cmd.AddCommand(NewCmdList())

	return cmd
}
