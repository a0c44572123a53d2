package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"convert", "plugin", "init", "config", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestNewCmdRoot_GlobalFlags(t *testing.T) {
	cmd := NewCmdRoot()

	for _, name := range []string{"config", "output", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestNewCmdRoot_ConvertStdin(t *testing.T) {
	t.Setenv("KARAS_HEADING_LEVEL", "")
	t.Setenv("KARAS_FORMAT", "")
	t.Setenv("KARAS_DISABLED_PLUGINS", "")

	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("= Title\n"))
	cmd.SetArgs([]string{"convert", "-c", filepath.Join(t.TempDir(), "none.yml"), "-l", "2"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<h2>Title</h2>")
}

func TestNewCmdRoot_ConvertMissingFile(t *testing.T) {
	cmd := NewCmdRoot()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"convert", "-c", filepath.Join(t.TempDir(), "none.yml"), filepath.Join(t.TempDir(), "missing.ks")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "karas version")
}
