package karas

import "strconv"

// Heading is a heading line of KARAS source.
type Heading struct {
	// Level is the mark count, before any start level is applied.
	Level int
	// Text is the raw markup after the marks, including any "::id" option.
	Text string
}

// convertHeading converts "=" lines. The rendered level is the mark count
// shifted by startLevel; levels past h6 render as <hr>.
func convertHeading(buf []rune, startLevel int) []rune {
	next := 0

	for {
		m, ok := find(reHeading, buf, next)
		if !ok {
			return buf
		}

		var newText string
		if level := m.length(1) + startLevel - 1; level > maxHeadingLevel {
			newText = encloseWithLineBreak("<hr>")
		} else {
			// Inline markup first, so options produced by it are split afterwards.
			parts, _ := SplitOption(ConvertInlineMarkup(m.value(2)))
			id := ""
			if len(parts) > 1 {
				id = ` id="` + parts[1] + `"`
			}
			tag := "h" + strconv.Itoa(level)
			newText = encloseWithLineBreak("<" + tag + id + ">" + parts[0] + "</" + tag + ">")
		}

		next = m.index(0) + runeLen(newText)
		buf = splice(buf, m.index(0), m.length(0)-m.length(3), encloseWithLineBreak(newText))
	}
}

// Headings lists the heading lines of text in document order.
// Text inside <pre> elements should be neutralized by the caller.
func Headings(text string) []Heading {
	var headings []Heading
	buf := []rune(text)
	next := 0

	for {
		m, ok := find(reHeading, buf, next)
		if !ok {
			return headings
		}
		headings = append(headings, Heading{Level: m.length(1), Text: m.value(2)})
		next = m.end(0) - m.length(3)
	}
}
