// Package karas converts KARAS markup into an HTML fragment.
//
// Conversion is a series of rewriting passes over one rune buffer. Block
// structure is built first, then each block's inline markup. Malformed
// markup never fails a conversion; unmatched delimiters stay as text.
package karas

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/open-cli-collective/karas-cli/pkg/plugin"
)

// DefaultStartHeadingLevel renders "=" as <h1>.
const DefaultStartHeadingLevel = 1

// Options configures a conversion.
type Options struct {
	// Registry resolves plugin names. Nil makes every plugin call fail.
	Registry plugin.Resolver
	// StartHeadingLevel is the level of a single "=" heading, 1 to 6.
	StartHeadingLevel int
	// Logger receives plugin failures and pass progress. Nil discards.
	Logger *log.Logger
}

// Convert converts source to HTML.
func Convert(source string, registry plugin.Resolver, startHeadingLevel int) string {
	return ConvertWithOptions(source, Options{Registry: registry, StartHeadingLevel: startHeadingLevel})
}

// ConvertWithOptions converts source to HTML using opts.
func ConvertWithOptions(source string, opts Options) string {
	return newConverter(opts).convert(source)
}

type converter struct {
	registry          plugin.Resolver
	startHeadingLevel int
	logger            *log.Logger
	newEscapeCode     func() string

	escapeCode string
}

func newConverter(opts Options) *converter {
	c := &converter{
		registry:          opts.Registry,
		startHeadingLevel: opts.StartHeadingLevel,
		logger:            opts.Logger,
		newEscapeCode:     randomEscapeCode,
	}
	if c.startHeadingLevel < 1 {
		c.startHeadingLevel = DefaultStartHeadingLevel
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

func (c *converter) convert(source string) string {
	c.escapeCode = generateSafeEscapeCode(source, defaultEscapeCode, c.newEscapeCode)
	esc := c.escapeCode
	lineBreak := lineBreakCode(source)

	text := strings.ReplaceAll(source, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	buf := []rune(text)

	// Keep plugin syntax away from the blockquote and block group passes.
	buf = replaceInPluginSyntax(buf, ">", esc+">")
	buf = replaceInPluginSyntax(buf, "{", esc+"{")

	buf = c.pass("block structure", buf, c.convertBlockStructure)
	buf = removeEscapeCode(buf, esc)

	buf = replaceInPre(buf, "[", esc+"[")
	buf = c.pass("plugins", buf, c.convertPlugin)
	buf = c.pass("block structure", buf, c.convertBlockStructure)

	buf = replaceInPre(buf, "#", esc+"#")
	buf = c.pass("comments", buf, convertCommentOut)
	buf = c.pass("whitespace lines", buf, convertWhiteSpaceLine)
	buf = replaceInPre(buf, "/", esc+"/")
	buf = c.pass("protocols", buf, convertProtocol)
	buf = c.pass("tables", buf, convertTable)
	buf = c.pass("lists", buf, convertList)
	buf = c.pass("definition lists", buf, convertDefList)
	buf = c.pass("headings", buf, func(b []rune) []rune { return convertHeading(b, c.startHeadingLevel) })
	buf = c.pass("block links", buf, convertBlockLink)
	buf = c.pass("paragraphs", buf, convertParagraph)
	buf = c.pass("blank lines", buf, reduceBlankLine)
	buf = removeEscapeCode(buf, esc)

	buf = replaceInPre(buf, `\`, esc)
	buf = c.pass("escapes", buf, reduceEscape)
	buf = replaceInPre(buf, esc, `\`)

	out := string(buf)
	if lineBreak != "\n" {
		out = strings.ReplaceAll(out, "\n", lineBreak)
	}
	return out
}

// convertBlockStructure alternates block groups and blockquotes until no
// blockquote is left, since each can contain the other.
func (c *converter) convertBlockStructure(buf []rune) []rune {
	buf = replaceInPre(buf, "\n", c.escapeCode+"\n"+c.escapeCode)
	for converted := true; converted; {
		buf = convertBlockGroup(buf, c.escapeCode)
		buf, converted = convertBlockquote(buf, c.escapeCode)
	}
	return buf
}

func (c *converter) pass(name string, buf []rune, fn func([]rune) []rune) []rune {
	out := fn(buf)
	c.logger.Debug("pass done", "pass", name, "runes", len(out))
	return out
}
