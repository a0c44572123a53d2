package plugincmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/karas-cli/internal/config"
	"github.com/open-cli-collective/karas-cli/internal/view"
	"github.com/open-cli-collective/karas-cli/pkg/plugin"
	"github.com/open-cli-collective/karas-cli/pkg/plugins"
)

type listOptions struct {
	configPath string
	output     string
	noColor    bool
	writer     io.Writer // For testing; defaults to os.Stdout
}

// pluginInfo is the JSON shape of a listed plugin.
type pluginInfo struct {
	Name        string   `json:"name"`
	Kinds       []string `json:"kinds"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
}

// NewCmdList creates the plugin list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bundled plugins",
		Long: `List the bundled plugins, the call forms each supports and whether
the configuration disables it.

A "convert" plugin is called as [[name::options::body]]. An "action"
plugin is called as [[[name::options]]] and sees the whole document.`,
		Example: `  # List plugins
  karas plugin list

  # Output as JSON
  karas plugin list -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.writer = cmd.OutOrStdout()
			return runList(opts, plugins.Default(), nil)
		},
	}

	return cmd
}

func runList(opts *listOptions, registry *plugin.Registry, cfg *config.Config) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	if cfg == nil {
		path := opts.configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}

		var err error
		cfg, err = config.LoadWithEnv(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	disabled := make(map[string]bool, len(cfg.DisabledPlugins))
	for _, name := range cfg.DisabledPlugins {
		disabled[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var infos []pluginInfo
	for _, name := range registry.Names() {
		p, _ := registry.Resolve(name)
		info := pluginInfo{Name: name, Kinds: plugin.Kinds(p), Enabled: !disabled[name]}
		if d, ok := p.(plugin.Describer); ok {
			info.Description = d.Description()
		}
		infos = append(infos, info)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.writer != nil {
		renderer.SetWriter(opts.writer)
	}

	if len(infos) == 0 {
		renderer.RenderText("No plugins registered.")
		return nil
	}

	if opts.output == string(view.FormatJSON) {
		return renderer.RenderJSON(infos)
	}

	headers := []string{"NAME", "KINDS", "ENABLED", "DESCRIPTION"}
	var rows [][]string
	for _, info := range infos {
		enabled := "yes"
		if !info.Enabled {
			enabled = "no"
		}
		rows = append(rows, []string{
			info.Name,
			strings.Join(info.Kinds, ","),
			enabled,
			view.Truncate(info.Description, 60),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}
