package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/karas-cli/pkg/karas"
	"github.com/open-cli-collective/karas-cli/pkg/plugin"
)

func TestDefault(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"escape", "markdown", "template", "toc"}, r.Names())

	for _, name := range r.Names() {
		p, ok := r.Resolve(name)
		require.True(t, ok)
		_, described := p.(plugin.Describer)
		assert.True(t, described, name)
	}
}

func TestTOC_Action(t *testing.T) {
	doc := "= A\n== B::b\n\ntext\n\n= C"

	tests := []struct {
		name    string
		options []string
		text    string
		want    string
	}{
		{
			name: "nested",
			text: "= A\n== B::b",
			want: "<ul>\n<li>A\n<ul>\n<li><a href=\"#b\">B</a></li>\n</ul>\n</li>\n</ul>",
		},
		{
			name: "back out a level",
			text: doc,
			want: "<ul>\n<li>A\n<ul>\n<li><a href=\"#b\">B</a></li>\n</ul>\n</li>\n<li>C</li>\n</ul>",
		},
		{
			name:    "top level",
			options: []string{"2"},
			text:    doc,
			want:    "<ul>\n<li><a href=\"#b\">B</a></li>\n</ul>",
		},
		{
			name:    "bottom level",
			options: []string{"1", "1"},
			text:    doc,
			want:    "<ul>\n<li>A</li>\n<li>C</li>\n</ul>",
		},
		{
			name: "headings in pre are ignored",
			text: "<pre>\n= X\n</pre>\n= A",
			want: "<ul>\n<li>A</li>\n</ul>",
		},
		{
			name: "no headings",
			text: "text",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TOC{}.Action(tt.options, "", tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTOC_InvalidOption(t *testing.T) {
	_, err := TOC{}.Action([]string{"x"}, "", "= A")
	assert.ErrorContains(t, err, "invalid top level")

	_, err = TOC{}.Action([]string{"1", "y"}, "", "= A")
	assert.ErrorContains(t, err, "invalid bottom level")
}

func TestTemplate(t *testing.T) {
	out, err := Template{}.Convert([]string{"opt"}, "body")
	require.NoError(t, err)
	assert.Equal(t, "body", out)

	out, err = Template{}.Action(nil, "body", "whole document")
	require.NoError(t, err)
	assert.Equal(t, "whole document", out)
}

func TestMarkdown_Convert(t *testing.T) {
	md := NewMarkdown()

	out, err := md.Convert(nil, "# T")
	require.NoError(t, err)
	assert.Equal(t, "<h1>T</h1>", out)

	out, err = md.Convert(nil, "| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>a</th>")
	assert.Contains(t, out, "<td>2</td>")

	out, err = md.Convert(nil, "  \n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEscape_Convert(t *testing.T) {
	out, err := Escape().Convert(nil, "**a** <b> ok")
	require.NoError(t, err)
	assert.Equal(t, "&#42;&#42;a&#42;&#42; &#60;b&#62; ok", out)
	assert.Equal(t, "escape", Escape().Name())
	assert.NotEmpty(t, Escape().Description())
}

func TestEscape_InDocument(t *testing.T) {
	got := karas.Convert("[[escape:::**a** <b>]]", Default(), karas.DefaultStartHeadingLevel)
	assert.Equal(t, "<p>&#42;&#42;a&#42;&#42; &#60;b&#62;</p>", got)
}
