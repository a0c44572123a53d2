package plugincmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/karas-cli/internal/config"
	"github.com/open-cli-collective/karas-cli/pkg/plugin"
	"github.com/open-cli-collective/karas-cli/pkg/plugins"
)

func TestRunList_Table(t *testing.T) {
	var buf bytes.Buffer
	opts := &listOptions{noColor: true, writer: &buf}

	err := runList(opts, plugins.Default(), &config.Config{DisabledPlugins: []string{"TOC"}})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "escape  convert  yes")
	assert.Contains(t, output, "markdown  convert  yes")
	assert.Contains(t, output, "template  convert,action  yes")
	assert.Contains(t, output, "toc  action  no")
}

func TestRunList_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := &listOptions{output: "json", noColor: true, writer: &buf}

	require.NoError(t, runList(opts, plugins.Default(), &config.Config{}))

	var infos []pluginInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, "escape", infos[0].Name)
	assert.Equal(t, "markdown", infos[1].Name)
	assert.Equal(t, []string{"action"}, infos[3].Kinds)
	for _, info := range infos {
		assert.True(t, info.Enabled)
		assert.NotEmpty(t, info.Description)
	}
}

func TestRunList_Plain(t *testing.T) {
	var buf bytes.Buffer
	opts := &listOptions{output: "plain", noColor: true, writer: &buf}

	require.NoError(t, runList(opts, plugins.Default(), &config.Config{}))
	assert.NotContains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "toc\taction\tyes")
}

func TestRunList_Empty(t *testing.T) {
	var buf bytes.Buffer
	opts := &listOptions{noColor: true, writer: &buf}

	require.NoError(t, runList(opts, plugin.NewRegistry(), &config.Config{}))
	assert.Contains(t, buf.String(), "No plugins registered.")
}

func TestRunList_InvalidOutput(t *testing.T) {
	opts := &listOptions{output: "xml", noColor: true, writer: &bytes.Buffer{}}

	err := runList(opts, plugins.Default(), &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewCmdPlugin(t *testing.T) {
	cmd := NewCmdPlugin()
	assert.Equal(t, "plugin", cmd.Use)
	assert.Len(t, cmd.Commands(), 1)
}
