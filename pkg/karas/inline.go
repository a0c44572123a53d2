package karas

import "strings"

// inlineMatch is an open delimiter run on the inline stack.
type inlineMatch struct {
	kind  InlineMarkupType
	index int
	marks []rune
}

type inlineStack []*inlineMatch

// nearest returns the position of the latest entry of kind, or -1.
func (s inlineStack) nearest(kind InlineMarkupType) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].kind == kind {
			return i
		}
	}
	return -1
}

// inlineReplacement describes how a matched pair rewrites the buffer.
type inlineReplacement struct {
	start     int    // open index
	text      string // replacement, leftover marks included
	leftClose int    // leftover close marks at the end of text
}

// ConvertInlineMarkup converts the inline markup of a single block.
func ConvertInlineMarkup(text string) string {
	buf := convertLineBreak([]rune(text))
	var stack inlineStack
	next := 0

	for {
		m, ok := find(reInlineMarkup, buf, next)
		if !ok {
			return string(buf)
		}

		if m.escaped(1) {
			next = m.index(2) + 1
			continue
		}

		marks := m.runes(2)
		kind, _ := lookupInlineMarkup(marks)
		cur := &inlineMatch{kind: kind, index: m.index(2), marks: marks}

		var (
			r       inlineReplacement
			matched bool
		)
		if kind >= InlineLinkOpen {
			stack, r, matched = resolveLinkOrGroup(buf, stack, cur)
		} else {
			stack, r, matched = resolveSpan(buf, stack, cur)
		}
		if !matched {
			next = cur.index + len(cur.marks)
			continue
		}

		// Whitespace after the close marks is not part of the syntax.
		end := cur.index + trimmedLen(cur.marks)
		buf = splice(buf, r.start, end-r.start, r.text)
		next = r.start + runeLen(r.text) - r.leftClose
	}
}

// resolveSpan pairs a basic span mark with the nearest open of its kind.
// A mark with no open becomes one, since the glyphs are symmetric.
func resolveSpan(buf []rune, stack inlineStack, cur *inlineMatch) (inlineStack, inlineReplacement, bool) {
	pos := stack.nearest(cur.kind)
	if pos < 0 {
		return append(stack, cur), inlineReplacement{}, false
	}

	open := stack[pos]
	body := strings.TrimSpace(string(buf[open.index+len(open.marks) : cur.index]))
	m, n := len(open.marks), len(cur.marks)
	strong := cur.kind <= InlineSupRuby && m >= 3 && n >= 3

	leftOpen, leftClose := markDiff(m, n)
	mark := inlineMarkupSets[cur.kind].mark
	text := repeatMark(mark, leftOpen) + spanHTML(cur.kind, body, strong) + repeatMark(mark, leftClose)

	stack = keepOpen(stack, pos, mark, leftOpen)
	return stack, inlineReplacement{start: open.index, text: text, leftClose: leftClose}, true
}

// keepOpen drops the entries above pos, and the entry at pos unless at least
// two of its marks are left over.
func keepOpen(stack inlineStack, pos int, mark rune, leftOpen int) inlineStack {
	if leftOpen > 1 {
		stack[pos].marks = []rune(repeatMark(mark, leftOpen))
		return stack[:pos+1]
	}
	return stack[:pos]
}

func spanHTML(kind InlineMarkupType, body string, strong bool) string {
	set := inlineMarkupSets[kind]

	if !strong {
		if kind.escapesContent() {
			body = escapeHTML(body)
		}
		return "<" + set.tag + ">" + body + "</" + set.tag + ">"
	}

	if kind == InlineSupRuby {
		return "<ruby>" + rubyHTML(body) + "</ruby>"
	}

	open, close := "<"+set.strong+">", "</"+set.strong+">"
	if kind == InlineDefAbbr {
		open = "<" + set.tag + ">" + open
		close += "</" + set.tag + ">"
	}
	if kind.escapesContent() {
		body = escapeHTML(body)
	}
	return open + body + close
}

// rubyHTML renders "base::text::base2::text2" as base text followed by annotations.
func rubyHTML(body string) string {
	parts, _ := SplitOptions(body)

	var sb strings.Builder
	sb.WriteString(parts[0])
	for i := 1; i < len(parts); i += 2 {
		sb.WriteString("<rp> (</rp><rt>" + parts[i] + "</rt><rp>) </rp>")
		if i+1 < len(parts) {
			sb.WriteString(parts[i+1])
		}
	}
	return sb.String()
}

// convertLineBreak converts an unescaped "~" at the end of a line into <br>.
func convertLineBreak(buf []rune) []rune {
	next := 0

	for {
		m, ok := find(reLineBreak, buf, next)
		if !ok {
			return buf
		}

		if m.escaped(1) {
			next = m.end(0)
			continue
		}

		newText := "<br>\n"
		buf = splice(buf, m.index(2), m.length(2), newText)
		next = m.index(2) + runeLen(newText)
	}
}
