package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/karas-cli/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "karas", "config.yml")
	require.NoError(t, (&config.Config{StartHeadingLevel: 2, Format: config.FormatHTML}).Save(configPath))

	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, configPath, true))
	assert.Contains(t, buf.String(), "Configuration cleared from "+configPath)

	// Verify file is deleted
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, filepath.Join(t.TempDir(), "config.yml"), true))
	assert.Contains(t, buf.String(), "No config file to remove")
}

func TestRunClear_Idempotent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	// Running twice should succeed
	require.NoError(t, runClear(&bytes.Buffer{}, configPath, true))
	require.NoError(t, runClear(&bytes.Buffer{}, configPath, true))
}

func TestRunClear_NotesActiveEnvVars(t *testing.T) {
	t.Setenv("KARAS_FORMAT", "markdown")
	t.Setenv("KARAS_HEADING_LEVEL", "")

	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, filepath.Join(t.TempDir(), "config.yml"), true))
	assert.Contains(t, buf.String(), "Environment variables will still be used: KARAS_FORMAT")
	assert.NotContains(t, buf.String(), "KARAS_HEADING_LEVEL")
}
