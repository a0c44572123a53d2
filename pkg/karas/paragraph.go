package karas

import "strings"

// convertBlockLink converts blocks starting with a link open.
// A block holding nothing but link and media elements is not wrapped in <p>.
func convertBlockLink(buf []rune) []rune {
	next := 0

	for {
		m, ok := find(reBlockLink, buf, next)
		if !ok {
			return buf
		}

		newText := strings.TrimSpace(ConvertInlineMarkup(m.value(0)))
		if isParagraph(newText) {
			newText = "<p>" + newText + "</p>"
		}
		newText = encloseWithLineBreak(newText)
		next = m.index(0) + runeLen(newText)
		buf = splice(buf, m.index(0), m.length(0), encloseWithLineBreak(newText))
	}
}

func isParagraph(text string) bool {
	rest, err := reLinkElement.Replace(text, "", -1, -1)
	if err != nil {
		return true
	}
	return strings.TrimSpace(rest) != ""
}

// convertParagraph wraps every remaining block in <p>, except blocks that
// start with exactly one "<", which are already HTML.
func convertParagraph(buf []rune) []rune {
	// length of the "\n\n" ending a converted paragraph
	const lineBreaks = 2

	next := 0
	for {
		m, ok := find(reParagraph, buf, next)
		if !ok {
			return buf
		}

		if m.length(2) == 1 {
			// The trailing line breaks can open the next block.
			next = m.end(1)
			continue
		}

		text := strings.TrimSpace(m.value(1))
		if text == "" {
			next = m.end(0)
			continue
		}

		newText := encloseWithLineBreak("<p>" + ConvertInlineMarkup(text) + "</p>\n")
		next = m.index(0) + runeLen(newText) - lineBreaks
		buf = splice(buf, m.index(0), m.length(0), newText)
	}
}

// reduceBlankLine removes empty lines and trims the result.
func reduceBlankLine(buf []rune) []rune {
	next := 0
	for {
		m, ok := find(reBlankLine, buf, next)
		if !ok {
			break
		}
		buf = splice(buf, m.index(0), m.length(0), "")
		next = m.index(0)
	}
	return []rune(strings.TrimSpace(string(buf)))
}
