package karas

import "strings"

// convertCommentOut removes every region between paired "##" marks.
// An unpaired open is left as text.
func convertCommentOut(buf []rune) []rune {
	open := -1
	next := 0

	for {
		m, ok := find(reCommentOut, buf, next)
		if !ok {
			return buf
		}

		if m.escaped(1) {
			next = m.index(2) + 1
			continue
		}

		if open < 0 {
			open = m.index(2)
			next = m.end(2)
			continue
		}

		buf = splice(buf, open, m.end(0)-open, "")
		next = open
		open = -1
	}
}

// convertWhiteSpaceLine empties lines holding only spaces and tabs.
func convertWhiteSpaceLine(buf []rune) []rune {
	next := 0
	for {
		m, ok := find(reWhiteSpaceLine, buf, next)
		if !ok {
			return buf
		}
		buf = splice(buf, m.index(0), m.length(0), "\n")
		next = m.index(0) + 1
	}
}

// convertProtocol escapes the slashes after a scheme, so "://" is not read as italic.
func convertProtocol(buf []rune) []rune {
	next := 0
	for {
		m, ok := find(reProtocol, buf, next)
		if !ok {
			return buf
		}
		newText := strings.Repeat(`\/`, m.length(1))
		buf = splice(buf, m.index(1), m.length(1), newText)
		next = m.index(1) + runeLen(newText)
	}
}
