package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Alignment is the text-align value applied to every cell of a table
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

var tableLinePattern = regexp.MustCompile(`^\s*\|.*\|.*\|\s*$`)

// IsTableLine reports whether a line is a pipe-delimited table row
func IsTableLine(line string) bool {
	return tableLinePattern.MatchString(line)
}

type tableState int

const (
	outsideTable tableState = iota
	insideTable
)

// ExtractTable renders the table found in lines as HTML.
//
// Contiguous table lines form a run. When several runs exist only the last
// one is returned. An empty string means no table line was found.
func ExtractTable(lines []string) string {
	var (
		state = outsideTable
		run   []string
		table string
	)

	for _, line := range lines {
		isRow := IsTableLine(line)

		switch state {
		case outsideTable:
			if isRow {
				run = append(run[:0], strings.TrimSpace(line))
				state = insideTable
			}
		case insideTable:
			if isRow {
				run = append(run, strings.TrimSpace(line))
				continue
			}
			table = renderTable(run)
			state = outsideTable
		}
	}

	if state == insideTable {
		table = renderTable(run)
	}

	return table
}

// renderTable turns a run of rows (header, alignment, body...) into HTML
func renderTable(rows []string) string {
	if len(rows) == 0 {
		return ""
	}

	align := AlignLeft
	if len(rows) > 1 {
		align = parseAlignment(rows[1])
	}

	var b strings.Builder
	b.WriteString("<table>")
	b.WriteString(renderRow(rows[0], align, true))
	if len(rows) > 2 {
		for _, row := range rows[2:] {
			b.WriteString(renderRow(row, align, false))
		}
	}
	b.WriteString("</table>")

	return b.String()
}

// parseAlignment derives one alignment from the whole separator row
func parseAlignment(row string) Alignment {
	markers := strings.TrimSpace(strings.ReplaceAll(row, "|", ""))

	switch {
	case strings.HasPrefix(markers, ":") && strings.HasSuffix(markers, ":"):
		return AlignCenter
	case strings.HasSuffix(markers, ":"):
		return AlignRight
	default:
		return AlignLeft
	}
}

func renderRow(row string, align Alignment, header bool) string {
	tag := "td"
	if header {
		tag = "th"
	}

	cells := strings.Split(row, "|")
	if len(cells) < 2 {
		return "<tr></tr>"
	}

	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range cells[1 : len(cells)-1] {
		fmt.Fprintf(&b, "<%s style='text-align: %s'>%s</%s>", tag, align, strings.TrimSpace(cell), tag)
	}
	b.WriteString("</tr>")

	return b.String()
}
