package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type action struct{ name string }

func (a action) Name() string { return a.name }

func (action) Action(_ []string, _, text string) (string, error) { return text, nil }

type both struct{ action }

func (both) Convert(_ []string, body string) (string, error) { return body, nil }

func echo(name string) ConvertFunc {
	return ConvertFunc{PluginName: name, Fn: func(_ []string, body string) (string, error) {
		return body, nil
	}}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry(echo("Echo"), action{name: "toc"})

	for _, name := range []string{"echo", "ECHO", " Echo "} {
		p, ok := r.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, "Echo", p.Name())
	}

	_, ok := r.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistry_ResolveNil(t *testing.T) {
	var r *Registry
	p, ok := r.Resolve("echo")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestRegistry_Register(t *testing.T) {
	var r Registry
	r.Register(echo("a"))
	r.Register(action{name: "A"})

	p, ok := r.Resolve("a")
	require.True(t, ok)
	assert.IsType(t, action{}, p, "a later plugin replaces one with the same name")
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(echo("zeta"), echo("Alpha"), action{name: "mid"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
	assert.Empty(t, NewRegistry().Names())
}

func TestRegistry_Without(t *testing.T) {
	r := NewRegistry(echo("a"), echo("b"))
	filtered := r.Without(" A ")

	_, ok := filtered.Resolve("a")
	assert.False(t, ok)
	_, ok = filtered.Resolve("B")
	assert.True(t, ok)

	_, ok = r.Resolve("a")
	assert.True(t, ok, "the base registry is unchanged")
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name   string
		plugin Plugin
		want   []string
	}{
		{"convert", echo("e"), []string{"convert"}},
		{"action", action{name: "a"}, []string{"action"}},
		{"both", both{action{name: "b"}}, []string{"convert", "action"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kinds(tt.plugin))
		})
	}
}

func TestConvertFunc(t *testing.T) {
	out, err := echo("e").Convert(nil, "body")
	require.NoError(t, err)
	assert.Equal(t, "body", out)

	_, err = ConvertFunc{PluginName: "nil"}.Convert(nil, "body")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestConvertFunc_Description(t *testing.T) {
	f := ConvertFunc{PluginName: "e", Summary: "echoes the body"}

	var p Plugin = f
	d, ok := p.(Describer)
	require.True(t, ok)
	assert.Equal(t, "echoes the body", d.Description())
}
