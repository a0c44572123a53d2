package karas

import (
	"html"
	"strings"

	"github.com/google/uuid"
)

// generateSafeEscapeCode returns code, or a regenerated one, that does not occur in text.
func generateSafeEscapeCode(text, code string, regenerate func() string) string {
	for strings.Contains(text, code) {
		code = regenerate()
	}
	return code
}

// randomEscapeCode returns the first eight hex digits of a random UUID.
func randomEscapeCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// lineBreakCode returns the first line break sequence of text, "\n" if there is none.
func lineBreakCode(text string) string {
	i := strings.IndexAny(text, "\r\n")
	switch {
	case i < 0:
		return "\n"
	case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
		return "\r\n"
	default:
		return text[i : i+1]
	}
}

func escapeHTML(text string) string {
	return html.EscapeString(text)
}

// reduceEscape removes ceil(k/2) backslashes from every run of k backslashes.
func reduceEscape(buf []rune) []rune {
	next := 0
	for {
		m, ok := find(reEscape, buf, next)
		if !ok {
			return buf
		}
		kept := repeatMark('\\', m.length(0)/2)
		buf = splice(buf, m.index(0), m.length(0), kept)
		next = m.index(0) + runeLen(kept)
	}
}

func removeEscapeCode(buf []rune, escapeCode string) []rune {
	return []rune(strings.ReplaceAll(string(buf), escapeCode, ""))
}

// protectLineBreaks brackets every line break of text with escapeCode.
func protectLineBreaks(text, escapeCode string) string {
	return strings.ReplaceAll(text, "\n", escapeCode+"\n"+escapeCode)
}
