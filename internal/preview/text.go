// Package preview renders parsed cards for a terminal.
package preview

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// HTMLText flattens a card HTML fragment to plain text.
// Line breaks, headings and table rows start new lines; table cells are
// separated by " | ".
func HTMLText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		b       strings.Builder
		newCell bool
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.TrimSpace(collapseBlankLines(b.String()))
			}
			return strings.TrimSpace(b.String())

		case html.TextToken:
			b.Write(z.Text())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "tr", "table":
				b.WriteString("\n")
				newCell = false
			case "th", "td":
				if newCell {
					b.WriteString(" | ")
				}
				newCell = true
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "h1", "h2", "h3", "h4", "h5", "table":
				b.WriteString("\n")
			}
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Wrap breaks each line of text into lines no wider than width
func Wrap(text string, width int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		result = append(result, wrapLine(line, width)...)
	}
	return result
}

// wrapLine wraps a single line of text to a specified width
func wrapLine(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if currentLine == "" {
			// First word on the line, always add it
			currentLine = word
		} else if utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
