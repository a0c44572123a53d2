// matcher.go implements the escape-aware delimiter scanning shared by every pass.
package karas

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// match wraps a regexp2 match over a rune buffer.
// All offsets are rune offsets into that buffer.
type match struct {
	m *regexp2.Match
}

// find returns the next match of re in buf at or after start.
func find(re *regexp2.Regexp, buf []rune, start int) (match, bool) {
	if start < 0 || start > len(buf) {
		return match{}, false
	}
	m, err := re.FindRunesMatchStartingAt(buf, start)
	if err != nil || m == nil {
		return match{}, false
	}
	return match{m: m}, true
}

func (m match) group(n int) *regexp2.Group {
	return m.m.GroupByNumber(n)
}

// index returns the start offset of group n, or 0 if the group did not participate.
func (m match) index(n int) int {
	if g := m.group(n); g != nil && len(g.Captures) > 0 {
		return g.Index
	}
	return 0
}

// length returns the length of group n, or 0 if the group did not participate.
func (m match) length(n int) int {
	if g := m.group(n); g != nil && len(g.Captures) > 0 {
		return g.Length
	}
	return 0
}

func (m match) end(n int) int {
	return m.index(n) + m.length(n)
}

// runes returns a copy of the text captured by group n.
func (m match) runes(n int) []rune {
	g := m.group(n)
	if g == nil || len(g.Captures) == 0 {
		return nil
	}
	return append([]rune(nil), g.Runes()...)
}

func (m match) value(n int) string {
	return string(m.runes(n))
}

// escaped reports whether the backslash run captured by group n has odd parity.
func (m match) escaped(n int) bool {
	return m.length(n)%2 == 1
}

// splice removes removeLength runes at index and inserts text there, returning a new buffer.
func splice(buf []rune, index, removeLength int, text string) []rune {
	insert := []rune(text)
	out := make([]rune, 0, len(buf)-removeLength+len(insert))
	out = append(out, buf[:index]...)
	out = append(out, insert...)
	return append(out, buf[index+removeLength:]...)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func encloseWithLineBreak(text string) string {
	return "\n" + text + "\n"
}

// removeWhiteSpace drops every whitespace rune from marks.
func removeWhiteSpace(marks []rune) []rune {
	out := make([]rune, 0, len(marks))
	for _, r := range marks {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}

// trimmedLen returns the length of marks without surrounding whitespace.
func trimmedLen(marks []rune) int {
	return runeLen(strings.TrimSpace(string(marks)))
}

// repeatMark returns n copies of mark.
func repeatMark(mark rune, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(mark), n)
}

// markDiff applies mark arithmetic to an open run of m marks and a close run of n marks.
// It returns the marks left over on each side; at most one of them is non-zero.
func markDiff(m, n int) (leftOpen, leftClose int) {
	if diff := m - n; diff > 0 {
		return diff, 0
	}
	return 0, n - m
}

// SplitOption splits text at the first unescaped "::" or ":::" separator.
// Both halves are trimmed. special reports whether the separator was ":::".
// Text without a separator is returned trimmed as the only element.
func SplitOption(text string) (parts []string, special bool) {
	buf := []rune(text)
	next := 0

	for {
		m, ok := find(reSplitOption, buf, next)
		if !ok {
			return []string{strings.TrimSpace(text)}, false
		}

		if m.escaped(1) {
			next = m.index(2) + 1
			continue
		}

		before := string(buf[:m.index(2)])
		after := string(buf[m.end(2):])
		return []string{strings.TrimSpace(before), strings.TrimSpace(after)}, m.length(2) == 3
	}
}

// SplitOptions splits text on every unescaped "::" separator.
// A ":::" separator ends the split: everything after it becomes the last
// element and hasSpecial is set.
func SplitOptions(text string) (options []string, hasSpecial bool) {
	rest := strings.TrimSpace(text)

	for {
		parts, special := SplitOption(rest)
		if len(parts) == 1 {
			return append(options, rest), hasSpecial
		}
		if special {
			return append(options, parts[0], parts[1]), true
		}
		options = append(options, parts[0])
		rest = parts[1]
	}
}

// pluginMatch is an open plugin delimiter on the plugin stack.
type pluginMatch struct {
	index int
	marks []rune
}

type span struct {
	start, end int
}

// replaceInPluginSyntax replaces old with new inside every plugin region.
// Regions pair up with the same mark arithmetic as plugin calls. Text is
// replaced once, when its outermost region closes or, for regions inside an
// open that never closes, at the end.
func replaceInPluginSyntax(buf []rune, old, new string) []rune {
	var (
		stack   []pluginMatch
		pending []span
		next    int
	)

	replace := func(s span) int {
		region := strings.ReplaceAll(string(buf[s.start:s.end]), old, new)
		buf = splice(buf, s.start, s.end-s.start, region)
		return s.start + runeLen(region)
	}

	for {
		m, ok := find(rePlugin, buf, next)
		if !ok {
			break
		}

		if m.escaped(1) {
			next = m.index(2) + 1
			continue
		}

		if m.length(3) != 0 {
			stack = append(stack, pluginMatch{index: m.index(2), marks: m.runes(2)})
			next = m.end(0)
			continue
		}

		if len(stack) == 0 {
			next = m.end(0)
			continue
		}

		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		closeLen := len(removeWhiteSpace(m.runes(2)))
		leftOpen, leftClose := markDiff(len(removeWhiteSpace(open.marks)), closeLen)

		region := span{start: open.index, end: m.index(2)}
		if leftOpen > 1 {
			region.start += leftOpen
			open.marks = []rune(repeatMark('[', leftOpen))
			stack = append(stack, open)
		}

		kept := pending[:0]
		for _, s := range pending {
			if s.start < region.start {
				kept = append(kept, s)
			}
		}
		pending = kept

		closeIndex := region.end
		if len(stack) == 0 {
			closeIndex = replace(region)
		} else {
			pending = append(pending, region)
		}

		if leftClose > 1 {
			next = closeIndex + closeLen - leftClose
		} else {
			next = closeIndex + m.length(2)
		}
	}

	for i := len(pending) - 1; i >= 0; i-- {
		replace(pending[i])
	}
	return buf
}

// ReplaceTextInPreElement replaces old with new inside the body of every
// <pre> element of text and leaves everything else untouched.
func ReplaceTextInPreElement(text, old, new string) string {
	return string(replaceInPre([]rune(text), old, new))
}

func replaceInPre(buf []rune, old, new string) []rune {
	if old == "" {
		return buf
	}

	var stack []int
	next := 0

	for {
		m, ok := find(rePreElement, buf, next)
		if !ok {
			return buf
		}

		if m.length(1) != 0 {
			start := m.end(1)
			stack = append(stack, start)
			next = start
			continue
		}

		if len(stack) == 0 {
			next = m.end(0)
			continue
		}

		start := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		end := m.index(0)
		body := strings.ReplaceAll(string(buf[start:end]), old, new)
		buf = splice(buf, start, end-start, body)
		next = start + runeLen(body) + m.length(0)
	}
}
