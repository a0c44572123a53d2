package karas

import "strings"

type listKind int

const (
	listUnordered listKind = iota
	listOrdered
)

func listKindOf(mark rune) listKind {
	if mark == '+' {
		return listOrdered
	}
	return listUnordered
}

func (k listKind) element() string {
	if k == listOrdered {
		return "ol"
	}
	return "ul"
}

// sequentialList is a run of adjacent items sharing one level and kind.
type sequentialList struct {
	kind  listKind
	level int
	items []string
}

func convertList(buf []rune) []rune {
	next := 0

	for {
		m, ok := find(reList, buf, next)
		if !ok {
			return buf
		}

		start := m.index(0)
		lists, end := collectLists(buf, start)
		newText := encloseWithLineBreak(listHTML(lists))
		next = start + runeLen(newText)
		buf = splice(buf, start, end-start, encloseWithLineBreak(newText))
	}
}

// collectLists gathers the list lines starting at start and returns them
// with the offset where the list ends. The last mark of a line decides its kind.
func collectLists(buf []rune, start int) ([]sequentialList, int) {
	var lists []sequentialList
	previousLevel := 0
	next := start

	for {
		m, ok := find(reList, buf, next)
		if !ok {
			return lists, next
		}

		marks := m.runes(1)
		level := len(marks)
		kind := listKindOf(marks[level-1])
		item := m.value(2)

		if n := len(lists); level != previousLevel || lists[n-1].kind != kind {
			lists = append(lists, sequentialList{kind: kind, level: level, items: []string{item}})
		} else {
			lists[n-1].items = append(lists[n-1].items, item)
		}
		previousLevel = level

		if m.length(3) == 0 {
			return lists, m.end(0) - m.length(4)
		}
		next = m.index(3)
	}
}

// listKindsByLevel records the first kind seen for each level.
// A level with no items takes the kind of the next deeper level that has one.
func listKindsByLevel(lists []sequentialList) map[int]listKind {
	kinds := make(map[int]listKind)
	maxLevel := 1

	for _, list := range lists {
		if list.level > maxLevel {
			maxLevel = list.level
		}
		if _, ok := kinds[list.level]; !ok {
			kinds[list.level] = list.kind
		}
	}

	for level := maxLevel - 1; level >= 1; level-- {
		if _, ok := kinds[level]; !ok {
			kinds[level] = kinds[level+1]
		}
	}
	return kinds
}

// listHTML renders the lists. kinds tracks the container currently open at each level.
func listHTML(lists []sequentialList) string {
	kinds := listKindsByLevel(lists)
	var sb strings.Builder

	first := lists[0]
	for level := 1; level < first.level; level++ {
		sb.WriteString("<" + kinds[level].element() + ">\n<li>\n")
	}
	sb.WriteString("<" + first.kind.element() + ">\n")
	kinds[first.level] = first.kind
	writeListItems(&sb, first.items)

	previous := first.level
	for _, list := range lists[1:] {
		switch {
		case list.level > previous:
			for level := previous + 1; level < list.level; level++ {
				sb.WriteString("\n<" + kinds[level].element() + ">\n<li>")
			}
			sb.WriteString("\n<" + list.kind.element() + ">\n")
			kinds[list.level] = list.kind

		case list.level < previous:
			sb.WriteString("</li>\n")
			for level := previous; level > list.level; level-- {
				sb.WriteString("</" + kinds[level].element() + ">\n</li>\n")
			}
			if kinds[list.level] != list.kind {
				sb.WriteString("</" + kinds[list.level].element() + ">\n<" + list.kind.element() + ">\n")
				kinds[list.level] = list.kind
			}

		default:
			sb.WriteString("</li>\n</" + kinds[previous].element() + ">\n<" + list.kind.element() + ">\n")
			kinds[list.level] = list.kind
		}

		writeListItems(&sb, list.items)
		previous = list.level
	}

	sb.WriteString("</li>\n")
	for level := previous; level > 1; level-- {
		sb.WriteString("</" + kinds[level].element() + ">\n</li>\n")
	}
	sb.WriteString("</" + kinds[1].element() + ">")

	return encloseWithLineBreak(sb.String())
}

// writeListItems writes items, leaving the last <li> open.
func writeListItems(sb *strings.Builder, items []string) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString("</li>\n")
		}
		sb.WriteString("<li" + listItemHTML(item))
	}
}

// listItemHTML returns the rest of an <li> open tag and the item content.
// An option after "::" becomes the value attribute.
func listItemHTML(item string) string {
	parts, _ := SplitOption(ConvertInlineMarkup(item))
	if len(parts) > 1 {
		return ` value="` + parts[1] + `">` + parts[0]
	}
	return ">" + parts[0]
}
