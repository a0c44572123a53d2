package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/karas-cli/internal/config"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

func newTestOptions(input string) (*convertOptions, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	return &convertOptions{
		noColor: true,
		stdin:   strings.NewReader(input),
		stdout:  stdout,
		stderr:  stderr,
	}, stdout, stderr
}

func TestRunConvert_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "= Title\n", "<h1>Title</h1>"},
		{"bold", "**bold**\n", "<p><b>bold</b></p>"},
		{"list", "- a\n- b\n", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, stdout, _ := newTestOptions(tt.input)

			require.NoError(t, runConvert(opts, defaultConfig()))
			assert.Contains(t, stdout.String(), tt.want)
			assert.True(t, strings.HasSuffix(stdout.String(), ">\n"))
		})
	}
}

func TestRunConvert_DashReadsStdin(t *testing.T) {
	opts, stdout, _ := newTestOptions("= Title\n")
	opts.file = "-"

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stdout.String(), "<h1>Title</h1>")
}

func TestRunConvert_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.ks")
	require.NoError(t, os.WriteFile(path, []byte("== Section\n"), 0644))

	opts, stdout, _ := newTestOptions("")
	opts.file = path

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stdout.String(), "<h2>Section</h2>")
}

func TestRunConvert_MissingFile(t *testing.T) {
	opts, _, _ := newTestOptions("")
	opts.file = filepath.Join(t.TempDir(), "missing.ks")

	err := runConvert(opts, defaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestRunConvert_HeadingLevelFlagOverridesConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.StartHeadingLevel = 3

	opts, stdout, _ := newTestOptions("= Title\n")
	require.NoError(t, runConvert(opts, cfg))
	assert.Contains(t, stdout.String(), "<h3>Title</h3>")

	opts, stdout, _ = newTestOptions("= Title\n")
	opts.headingLevel = 2
	require.NoError(t, runConvert(opts, cfg))
	assert.Contains(t, stdout.String(), "<h2>Title</h2>")
}

func TestRunConvert_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*convertOptions)
	}{
		{"heading level", func(o *convertOptions) { o.headingLevel = 9 }},
		{"format", func(o *convertOptions) { o.to = "pdf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _, _ := newTestOptions("= Title\n")
			tt.modify(opts)

			err := runConvert(opts, defaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid options")
		})
	}
}

func TestRunConvert_Markdown(t *testing.T) {
	opts, stdout, _ := newTestOptions("= Title\n")
	opts.to = "Markdown"

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stdout.String(), "# Title")
	assert.NotContains(t, stdout.String(), "<h1>")
}

func TestRunConvert_DisabledPlugin(t *testing.T) {
	opts, stdout, stderr := newTestOptions("= Title\n\n[[[toc]]]\n")
	opts.disabled = []string{"toc"}

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stdout.String(), `Plugin "toc" could not be run.`)
	assert.Contains(t, stderr.String(), "plugin not found")
}

func TestRunConvert_UnknownDisabledPlugin(t *testing.T) {
	opts, stdout, stderr := newTestOptions("**a**\n")
	opts.disabled = []string{"nope"}

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stdout.String(), "<b>a</b>")
	assert.Contains(t, stderr.String(), `! Unknown plugin "nope", nothing to disable`)
}

func TestRunConvert_DisabledPluginFromConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.DisabledPlugins = []string{"template"}

	opts, stdout, _ := newTestOptions("[[template::kept]]\n")
	require.NoError(t, runConvert(opts, cfg))
	assert.Contains(t, stdout.String(), `Plugin "template" could not be run.`)
}

func TestRunConvert_TableOfContents(t *testing.T) {
	opts, stdout, _ := newTestOptions("[[[toc]]]\n\n= One\n\n== Two\n")

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stdout.String(), "<li>One")
	assert.Contains(t, stdout.String(), "<li>Two")
}

func TestRunConvert_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "doc.html")

	opts, stdout, stderr := newTestOptions("= Title\n")
	opts.write = path

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Title</h1>")
}

func TestRunConvert_VerboseLogsStages(t *testing.T) {
	opts, _, stderr := newTestOptions("= Title\n")
	opts.verbose = true

	require.NoError(t, runConvert(opts, defaultConfig()))
	assert.Contains(t, stderr.String(), "conversion started")
	assert.Contains(t, stderr.String(), "pass done")
	assert.Contains(t, stderr.String(), "conversion completed")
}

func TestRunConvert_LoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, (&config.Config{StartHeadingLevel: 4, Format: config.FormatHTML}).Save(path))

	t.Setenv("KARAS_HEADING_LEVEL", "")
	t.Setenv("KARAS_FORMAT", "")
	t.Setenv("KARAS_DISABLED_PLUGINS", "")

	opts, stdout, stderr := newTestOptions("= Title\n")
	opts.configPath = path
	opts.verbose = true

	require.NoError(t, runConvert(opts, nil))
	assert.Contains(t, stdout.String(), "<h4>Title</h4>")
	assert.Contains(t, stderr.String(), "config loaded")
}

func TestNewCmdConvert_Flags(t *testing.T) {
	cmd := NewCmdConvert()

	for _, name := range []string{"heading-level", "to", "write", "disable-plugin"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "l", cmd.Flags().Lookup("heading-level").Shorthand)
	assert.Equal(t, "w", cmd.Flags().Lookup("write").Shorthand)
}
