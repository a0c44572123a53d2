package init

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/karas-cli/internal/config"
	"github.com/open-cli-collective/karas-cli/pkg/karas"
)

func TestRunInit_NoPrompt(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "karas", "config.yml")
	var out bytes.Buffer

	err := runInit(&initOptions{
		configPath:   configPath,
		headingLevel: 2,
		format:       config.FormatMarkdown,
		disabled:     []string{"toc"},
		noPrompt:     true,
		out:          &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Configuration saved to "+configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.StartHeadingLevel)
	assert.Equal(t, config.FormatMarkdown, cfg.Format)
	assert.Equal(t, []string{"toc"}, cfg.DisabledPlugins)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRunInit_DefaultsWhenEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := runInit(&initOptions{configPath: configPath, noPrompt: true, out: &bytes.Buffer{}})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, karas.DefaultStartHeadingLevel, cfg.StartHeadingLevel)
	assert.Equal(t, config.FormatHTML, cfg.Format)
}

func TestRunInit_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		opts initOptions
	}{
		{"heading level", initOptions{headingLevel: 7}},
		{"format", initOptions{format: "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")
			opts := tt.opts
			opts.configPath = configPath
			opts.noPrompt = true
			opts.out = &bytes.Buffer{}

			err := runInit(&opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")

			_, statErr := os.Stat(configPath)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestRunInit_ExistingConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{StartHeadingLevel: 3, Format: config.FormatHTML}).Save(configPath))

	err := runInit(&initOptions{configPath: configPath, headingLevel: 1, noPrompt: true, out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	err = runInit(&initOptions{configPath: configPath, headingLevel: 1, noPrompt: true, force: true, out: &bytes.Buffer{}})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.StartHeadingLevel)
}

func TestNewForm(t *testing.T) {
	cfg := &config.Config{StartHeadingLevel: 1, Format: config.FormatHTML}
	assert.NotNil(t, newForm(cfg))
}
