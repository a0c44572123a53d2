package karas

// blockGroupMatch is an open "{{" line on the block group stack.
type blockGroupMatch struct {
	kind   BlockGroupType
	index  int
	length int
	option string
}

func newBlockGroupMatch(index, length int, optionText string) blockGroupMatch {
	g := blockGroupMatch{index: index, length: length}

	options, _ := SplitOptions(optionText)
	g.kind = LookupBlockGroupType(options[0])
	if g.kind == BlockGroupUndefined {
		g.kind = BlockGroupDiv
		g.option = options[0]
	}
	if len(options) > 1 {
		g.option = options[1]
	}
	return g
}

// tags returns the replacement text for the open and close lines of the group.
func (g blockGroupMatch) tags() (open, close string) {
	element := g.kind.Element()
	class := ""
	if g.option != "" {
		class = ` class="` + g.option + `"`
	}

	open = "<" + element + class + ">"
	close = "</" + element + ">"

	if !g.kind.isLiteral() {
		return encloseWithLineBreak(open) + "\n", "\n" + encloseWithLineBreak(close)
	}
	if g.kind >= BlockGroupCode {
		open = "<pre" + class + ">" + open
		close += "</pre>"
	}
	return "\n" + open, close + "\n"
}

type groupClose struct {
	index, length int
}

// convertBlockGroup converts "{{type::class" ... "}}" line pairs.
// Inside a literal group every nested open only raises the depth; when the
// buffer ends with the literal group still open, the last close seen is used.
func convertBlockGroup(buf []rune, escapeCode string) []rune {
	var (
		stack        []blockGroupMatch
		lastClose    *groupClose
		literalDepth int
		next         int
	)

	for {
		var closing groupClose

		m, ok := find(reBlockGroup, buf, next)
		switch {
		case !ok:
			if literalDepth == 0 || lastClose == nil {
				return buf
			}
			closing = *lastClose
			lastClose = nil
			literalDepth = 0

		case m.length(1) > 0:
			g := newBlockGroupMatch(m.index(0), m.length(0), m.value(2))
			switch {
			case literalDepth > 0:
				literalDepth++
			case g.kind.isLiteral():
				literalDepth = 1
				lastClose = nil
				stack = append(stack, g)
			default:
				stack = append(stack, g)
			}
			next = m.end(0)
			continue

		case len(stack) == 0:
			next = m.end(0)
			continue

		case literalDepth > 1:
			literalDepth--
			lastClose = &groupClose{index: m.index(0), length: m.length(0)}
			next = m.end(0)
			continue

		default:
			closing = groupClose{index: m.index(0), length: m.length(0)}
		}

		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		openTag, closeTag := open.tags()

		// The line breaks after the open line and before the close line are not body.
		body := ""
		if start, end := open.index+open.length+1, closing.index-1; end > start {
			body = string(buf[start:end])
		}

		switch {
		case open.kind == BlockGroupDetails:
			body = convertFigcaptionSummary(body, "summary")
		case open.kind == BlockGroupFigure:
			body = convertFigcaptionSummary(body, "figcaption")
		case open.kind.isLiteral():
			body = protectLineBreaks(escapeHTML(body), escapeCode)
			literalDepth = 0
		}

		newText := openTag + body + closeTag
		buf = splice(buf, open.index, closing.index+closing.length-open.index, newText)
		next = open.index + runeLen(newText)
	}
}

// convertFigcaptionSummary converts "=" lines of a details or figure group into element.
func convertFigcaptionSummary(text, element string) string {
	buf := []rune(text)
	next := 0

	for {
		m, ok := find(reFigcaptionSummary, buf, next)
		if !ok {
			return string(buf)
		}

		var newText string
		if m.length(1) > maxHeadingLevel {
			newText = encloseWithLineBreak("<hr>")
		} else {
			// Inline markup first, so options produced by it are split afterwards.
			parts, _ := SplitOptions(ConvertInlineMarkup(m.value(2)))
			id := ""
			if len(parts) > 1 {
				id = ` id="` + parts[1] + `"`
			}
			newText = encloseWithLineBreak("<" + element + id + ">" + parts[0] + "</" + element + ">")
		}

		next = m.index(0) + runeLen(newText)
		buf = splice(buf, m.index(0), m.length(0)-m.length(3), encloseWithLineBreak(newText))
	}
}
