package karas

import "strings"

// sequentialBlockquote is a run of adjacent quote lines of one level.
type sequentialBlockquote struct {
	level int
	text  string
}

// convertBlockquote converts runs of ">" lines and reports whether any run was converted.
func convertBlockquote(buf []rune, escapeCode string) ([]rune, bool) {
	converted := false
	next := 0

	for {
		m, ok := find(reBlockquote, buf, next)
		if !ok {
			return buf, converted
		}

		start := m.index(0)
		quotes, end := collectBlockquotes(buf, start)

		newText := string(replaceInPre([]rune(blockquoteHTML(quotes)), "\n", escapeCode+"\n"+escapeCode))
		newText = encloseWithLineBreak(newText)
		next = start + runeLen(newText)
		buf = splice(buf, start, end-start, encloseWithLineBreak(newText))
		converted = true
	}
}

// collectBlockquotes gathers the quote lines starting at start and returns
// them with the offset where the run ends.
func collectBlockquotes(buf []rune, start int) ([]sequentialBlockquote, int) {
	var quotes []sequentialBlockquote
	next := start

	for {
		m, ok := find(reBlockquote, buf, next)
		if !ok {
			return quotes, next
		}

		level := m.length(1)
		text := strings.TrimSpace(m.value(2))

		if n := len(quotes); n > 0 && quotes[n-1].level == level {
			if quotes[n-1].text != "" {
				quotes[n-1].text += "\n"
			}
			quotes[n-1].text += text
		} else {
			quotes = append(quotes, sequentialBlockquote{level: level, text: text})
		}

		if m.length(3) == 0 {
			return quotes, m.end(0) - m.length(4)
		}
		next = m.index(3)
	}
}

func blockquoteHTML(quotes []sequentialBlockquote) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("<blockquote>\n\n", quotes[0].level))
	sb.WriteString(quotes[0].text)

	for i := 1; i < len(quotes); i++ {
		if diff := quotes[i].level - quotes[i-1].level; diff > 0 {
			sb.WriteString(strings.Repeat("\n\n<blockquote>", diff))
		} else {
			sb.WriteString(strings.Repeat("\n\n</blockquote>", -diff))
		}
		sb.WriteString("\n\n" + quotes[i].text)
	}

	sb.WriteString(strings.Repeat("\n\n</blockquote>", quotes[len(quotes)-1].level))
	return sb.String()
}
