// Package convert provides the convert command.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/karas-cli/internal/config"
	"github.com/open-cli-collective/karas-cli/internal/logger"
	"github.com/open-cli-collective/karas-cli/internal/view"
	"github.com/open-cli-collective/karas-cli/pkg/export"
	"github.com/open-cli-collective/karas-cli/pkg/karas"
	"github.com/open-cli-collective/karas-cli/pkg/plugins"
)

type convertOptions struct {
	file         string
	configPath   string
	headingLevel int // 0 = from config
	to           string
	write        string
	disabled     []string
	verbose      bool
	noColor      bool
	stdin        io.Reader // defaults to os.Stdin
	stdout       io.Writer // For testing; defaults to os.Stdout
	stderr       io.Writer // For testing; defaults to os.Stderr
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a KARAS document to HTML",
		Long: `Convert a KARAS document to an HTML fragment.

The document is read from the given file, or from standard input when no
file is given or the file is "-". The result is written to standard output
unless --write is set.

Use --to markdown to export the converted HTML as Markdown.`,
		Example: `  # Convert a file
  karas convert notes.ks

  # Convert from stdin
  echo "= Title" | karas convert

  # Start headings at <h2> and write to a file
  karas convert notes.ks -l 2 -w notes.html

  # Export as Markdown without the table of contents plugin
  karas convert notes.ks --to markdown --disable-plugin toc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runConvert(opts, nil)
		},
	}

	cmd.Flags().IntVarP(&opts.headingLevel, "heading-level", "l", 0, "Heading level of a single \"=\" (1-6, default from config)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Output format: html, markdown (default from config)")
	cmd.Flags().StringVarP(&opts.write, "write", "w", "", "Write the result to a file instead of stdout")
	cmd.Flags().StringSliceVar(&opts.disabled, "disable-plugin", nil, "Disable a plugin by name (repeatable)")

	return cmd
}

func runConvert(opts *convertOptions, cfg *config.Config) error {
	stderr := opts.stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	log := logger.New(stderr, opts.verbose)

	// Load config if not provided (allows injection for testing)
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
		log.ConfigLoaded(path, cfg.StartHeadingLevel, cfg.Format)
	}

	effective := *cfg
	if opts.headingLevel != 0 {
		effective.StartHeadingLevel = opts.headingLevel
	}
	if opts.to != "" {
		effective.Format = strings.ToLower(opts.to)
	}
	effective.DisabledPlugins = append(append([]string{}, cfg.DisabledPlugins...), opts.disabled...)

	if err := effective.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	registry := plugins.Default()
	warnings := view.NewRenderer(view.FormatPlain, opts.noColor)
	warnings.SetWriter(stderr)
	for _, name := range opts.disabled {
		if _, ok := registry.Resolve(name); !ok {
			warnings.Warning(fmt.Sprintf("Unknown plugin %q, nothing to disable", name))
		}
	}

	source, name, err := readSource(opts)
	if err != nil {
		return err
	}

	log.ConversionStarted(name, effective.StartHeadingLevel, effective.Format)
	log.PluginsDisabled(effective.DisabledPlugins)
	start := time.Now()

	out := karas.ConvertWithOptions(source, karas.Options{
		Registry:          registry.Without(effective.DisabledPlugins...),
		StartHeadingLevel: effective.StartHeadingLevel,
		Logger:            log.Logger,
	})

	if effective.Format == config.FormatMarkdown {
		out, err = export.ToMarkdown(out)
		if err != nil {
			return fmt.Errorf("failed to export markdown: %w", err)
		}
	}

	log.ConversionCompleted(name, len(out), time.Since(start))

	if opts.write != "" {
		return writeResult(opts, out)
	}

	renderer := view.NewRenderer(view.FormatPlain, opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.RenderDocument(out)
	return nil
}

// readSource returns the document and a name for it in logs.
func readSource(opts *convertOptions) (string, string, error) {
	if opts.file != "" && opts.file != "-" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), opts.file, nil
	}

	stdin := opts.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		return "", "", fmt.Errorf("no input: pass a file or pipe a document to stdin")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), "stdin", nil
}

func writeResult(opts *convertOptions, out string) error {
	if dir := filepath.Dir(opts.write); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.write, []byte(strings.TrimRight(out, "\r\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	renderer := view.NewRenderer(view.FormatPlain, opts.noColor)
	if opts.stderr != nil {
		renderer.SetWriter(opts.stderr)
	}
	renderer.Success(fmt.Sprintf("Wrote %s", opts.write))
	return nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
