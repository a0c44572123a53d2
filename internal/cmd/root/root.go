// Package root provides the root command for the karas CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/karas-cli/internal/cmd/completion"
	"github.com/open-cli-collective/karas-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/karas-cli/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/karas-cli/internal/cmd/init"
	"github.com/open-cli-collective/karas-cli/internal/cmd/plugincmd"
	"github.com/open-cli-collective/karas-cli/internal/version"
)

// NewCmdRoot creates the root command for karas.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "karas",
		Short: "A converter for the KARAS markup language",
		Long: `karas converts documents written in the KARAS lightweight markup
language into HTML fragments.

Block groups, quotes, tables, lists, headings and inline markup are
supported, along with plugins called as [[name]] and [[[name]]].

Get started by running: echo '= Hello' | karas convert`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/karas/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion progress to stderr")

	// Set version template
	cmd.SetVersionTemplate("karas version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(plugincmd.NewCmdPlugin())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
