// Package init provides the init command for karas.
package init

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/karas-cli/internal/config"
	"github.com/open-cli-collective/karas-cli/pkg/karas"
	"github.com/open-cli-collective/karas-cli/pkg/plugins"
)

type initOptions struct {
	configPath   string
	headingLevel int
	format       string
	disabled     []string
	noPrompt     bool
	force        bool
	out          io.Writer // For testing; defaults to os.Stdout
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize karas configuration",
		Long: `Initialize karas with your conversion defaults.

This command will guide you through choosing the heading level of a single
"=", the output format and the plugins to disable. The configuration will be
saved to ~/.config/karas/config.yml.`,
		Example: `  # Interactive setup
  karas init

  # Non-interactive setup
  karas init --no-prompt --heading-level 2 --format markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().IntVarP(&opts.headingLevel, "heading-level", "l", karas.DefaultStartHeadingLevel, "Heading level of a single \"=\" (1-6)")
	cmd.Flags().StringVar(&opts.format, "format", config.FormatHTML, "Output format: html, markdown")
	cmd.Flags().StringSliceVar(&opts.disabled, "disable-plugin", nil, "Disable a plugin by name (repeatable)")
	cmd.Flags().BoolVar(&opts.noPrompt, "no-prompt", false, "Save the flag values without prompting")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.noPrompt {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		StartHeadingLevel: opts.headingLevel,
		Format:            opts.format,
		DisabledPlugins:   opts.disabled,
	}

	if !opts.noPrompt {
		if err := newForm(cfg).Run(); err != nil {
			return err
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  echo '= Hello' | karas convert")
	fmt.Fprintln(out, "  karas plugin list")

	return nil
}

// newForm builds the setup form, prefilled from cfg.
func newForm(cfg *config.Config) *huh.Form {
	levels := make([]huh.Option[int], 0, 6)
	for level := 1; level <= 6; level++ {
		levels = append(levels, huh.NewOption("<h"+strconv.Itoa(level)+">", level))
	}

	registry := plugins.Default()
	names := registry.Names()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Start heading level").
				Description(`Element rendered for a single "="`).
				Options(levels...).
				Value(&cfg.StartHeadingLevel),

			huh.NewSelect[string]().
				Title("Output format").
				Description("Format written by karas convert").
				Options(
					huh.NewOption("HTML", config.FormatHTML),
					huh.NewOption("Markdown", config.FormatMarkdown),
				).
				Value(&cfg.Format),

			huh.NewMultiSelect[string]().
				Title("Disabled plugins (optional)").
				Description("Calls to these plugins render a failure notice").
				Options(huh.NewOptions(names...)...).
				Value(&cfg.DisabledPlugins),
		),
	)
}
