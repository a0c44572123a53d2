package karas

import (
	"strconv"
	"strings"
)

// tableCellMarkLength is the length of a cell mark like "||" or "!>".
const tableCellMarkLength = 2

type cellAlign int

const (
	alignNone cellAlign = iota
	alignLeft
	alignRight
	alignCenter
)

func (a cellAlign) attribute() string {
	switch a {
	case alignLeft:
		return ` style="text-align:left"`
	case alignRight:
		return ` style="text-align:right"`
	case alignCenter:
		return ` style="text-align:center"`
	default:
		return ""
	}
}

type tableCell struct {
	header       bool
	align        cellAlign
	colSpanBlank bool
	rowSpanBlank bool
	text         string
}

func newTableCell(typeMark, alignMark string) tableCell {
	cell := tableCell{header: typeMark == "!"}
	switch alignMark {
	case ">":
		cell.align = alignRight
	case "<":
		cell.align = alignLeft
	case "=":
		cell.align = alignCenter
	}
	return cell
}

func (c *tableCell) setText(text string) {
	switch text = strings.TrimSpace(text); text {
	case "::":
		c.colSpanBlank = true
	case ":::":
		c.rowSpanBlank = true
	default:
		c.text = ConvertInlineMarkup(text)
	}
}

func (c tableCell) element() string {
	if c.header {
		return "th"
	}
	return "td"
}

func (c tableCell) blank() bool {
	return c.colSpanBlank || c.rowSpanBlank
}

func convertTable(buf []rune) []rune {
	next := 0

	for {
		m, ok := find(reTableBlock, buf, next)
		if !ok {
			return buf
		}

		newText := encloseWithLineBreak(tableHTML(tableCells(m.value(1))))
		next = m.index(0) + runeLen(newText)
		buf = splice(buf, m.index(0), m.length(0)-m.length(2), encloseWithLineBreak(newText))
	}
}

// tableCells splits a table block into rows of cells.
// The text of a cell runs from its mark to the next unescaped mark or the end of the line.
func tableCells(block string) [][]tableCell {
	lines := strings.Split(block, "\n")
	rows := make([][]tableCell, len(lines))

	for i, line := range lines {
		buf := []rune(line)
		next, textStart := 0, 0

		for {
			m, ok := find(reTableCell, buf, next)
			if !ok {
				if n := len(rows[i]); n > 0 {
					rows[i][n-1].setText(string(buf[textStart:]))
				}
				break
			}

			if m.escaped(1) {
				next = m.index(2) + 1
				continue
			}

			if n := len(rows[i]); n > 0 {
				rows[i][n-1].setText(string(buf[textStart:m.index(2)]))
			}
			rows[i] = append(rows[i], newTableCell(m.value(2), m.value(3)))
			next = m.index(2) + tableCellMarkLength
			textStart = next
		}
	}

	return rows
}

func tableHTML(rows [][]tableCell) string {
	var sb strings.Builder
	sb.WriteString("<table>\n")

	for r, row := range rows {
		sb.WriteString("<tr>")
		for c, cell := range row {
			if cell.blank() {
				continue
			}

			element := cell.element()
			sb.WriteString("<" + element)
			if n := colSpan(rows, r, c); n > 1 {
				sb.WriteString(` colspan="` + strconv.Itoa(n) + `"`)
			}
			if n := rowSpan(rows, r, c); n > 1 {
				sb.WriteString(` rowspan="` + strconv.Itoa(n) + `"`)
			}
			sb.WriteString(cell.align.attribute() + ">" + cell.text + "</" + element + ">")
		}
		sb.WriteString("</tr>\n")
	}

	sb.WriteString("</table>")
	return sb.String()
}

// colSpan counts the cell at (row, column) and the colspan blanks to its right.
func colSpan(rows [][]tableCell, row, column int) int {
	span := 1
	for c := column + 1; c < len(rows[row]) && rows[row][c].colSpanBlank; c++ {
		span++
	}
	return span
}

// rowSpan counts the cell at (row, column) and the rowspan blanks below it.
// Rows too short to have the column end the span.
func rowSpan(rows [][]tableCell, row, column int) int {
	span := 1
	for r := row + 1; r < len(rows) && column < len(rows[r]) && rows[r][column].rowSpanBlank; r++ {
		span++
	}
	return span
}
