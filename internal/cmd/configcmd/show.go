package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/karas-cli/internal/config"
	"github.com/open-cli-collective/karas-cli/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current karas configuration with value source indicators.`,
		Example: `  # Show current config
  karas config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-18s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		// Determine source
		source := "default"
		switch {
		case os.Getenv(envVar) != "":
			source = envVar
		case fileErr == nil && fileValue != "":
			source = "config"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	fileLevel := ""
	if fileCfg.StartHeadingLevel != 0 {
		fileLevel = strconv.Itoa(fileCfg.StartHeadingLevel)
	}

	printField("Heading level", strconv.Itoa(cfg.StartHeadingLevel), fileLevel, "KARAS_HEADING_LEVEL")
	printField("Format", cfg.Format, fileCfg.Format, "KARAS_FORMAT")
	printField("Disabled plugins", strings.Join(cfg.DisabledPlugins, ", "),
		strings.Join(fileCfg.DisabledPlugins, ", "), "KARAS_DISABLED_PLUGINS")

	fmt.Fprintln(w)
	r := view.NewRenderer(view.FormatPlain, noColor)
	r.SetWriter(w)
	r.RenderKeyValue("Config file", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
