package plugins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/open-cli-collective/karas-cli/pkg/karas"
)

// TOC renders a table of contents from the headings of the document.
//
//	[[[toc]]] or [[[toc::top::bottom]]]
//
// top and bottom bound the heading levels listed, 1 and 6 by default.
type TOC struct{}

func (TOC) Name() string { return "toc" }

func (TOC) Description() string { return "table of contents from document headings" }

func (TOC) Action(options []string, _, text string) (string, error) {
	top, bottom := 1, 6
	var err error
	if len(options) > 0 {
		if top, err = strconv.Atoi(strings.TrimSpace(options[0])); err != nil {
			return "", fmt.Errorf("invalid top level %q: %w", options[0], err)
		}
	}
	if len(options) > 1 {
		if bottom, err = strconv.Atoi(strings.TrimSpace(options[1])); err != nil {
			return "", fmt.Errorf("invalid bottom level %q: %w", options[1], err)
		}
	}

	// Headings inside preformatted text are not headings.
	text = karas.ReplaceTextInPreElement(text, "=", "")

	var sb strings.Builder
	previous := 0
	for _, h := range karas.Headings(text) {
		if h.Level > bottom {
			continue
		}
		level := h.Level - top + 1
		if level <= 0 {
			continue
		}

		switch diff := level - previous; {
		case diff > 0:
			sb.WriteString(strings.Repeat("\n<ul>\n<li>", diff))
		case diff < 0:
			sb.WriteString(strings.Repeat("</li>\n</ul>\n", -diff))
			sb.WriteString("</li>\n<li>")
		default:
			sb.WriteString("</li>\n<li>")
		}
		previous = level

		parts, _ := karas.SplitOptions(karas.ConvertInlineMarkup(h.Text))
		item := parts[0]
		if len(parts) > 1 {
			item = `<a href="#` + strings.TrimSpace(parts[1]) + `">` + item + `</a>`
		}
		sb.WriteString(item)
	}
	sb.WriteString(strings.Repeat("</li>\n</ul>\n", previous))

	return strings.TrimSpace(sb.String()), nil
}
