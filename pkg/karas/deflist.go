package karas

import "strings"

// convertDefList converts runs of ";" term lines and ";;" definition lines.
func convertDefList(buf []rune) []rune {
	var sb strings.Builder
	start := -1
	next := 0

	for {
		m, ok := find(reDefList, buf, next)
		if !ok {
			return buf
		}

		if start < 0 {
			start = m.index(0)
			sb.Reset()
			sb.WriteString("<dl>\n")
		}

		element := "dd"
		if m.length(1) == 1 {
			element = "dt"
		}
		sb.WriteString("<" + element + ">" + ConvertInlineMarkup(strings.TrimSpace(m.value(2))) + "</" + element + ">\n")

		if m.length(3) != 0 {
			next = m.index(3)
			continue
		}

		newText := encloseWithLineBreak(sb.String() + "</dl>")
		end := m.end(0) - m.length(4)
		next = start + runeLen(newText)
		buf = splice(buf, start, end-start, encloseWithLineBreak(newText))
		start = -1
	}
}
