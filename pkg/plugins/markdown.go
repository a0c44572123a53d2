package plugins

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders its body as Markdown with GFM tables.
//
//	[[markdown:::# Title
//	| a | b |
//	|---|---|
//	]]
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a Markdown plugin with the table extension enabled.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(goldmark.WithExtensions(extension.Table))}
}

func (*Markdown) Name() string { return "markdown" }

func (*Markdown) Description() string { return "renders the body as Markdown" }

func (m *Markdown) Convert(_ []string, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
