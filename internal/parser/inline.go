package parser

import (
	"regexp"
	"strings"
)

// Bullet replaces a leading "-" list marker
const Bullet = "•"

var (
	bulletMarker = regexp.MustCompile(`^(\s*)-`)

	// Longest marker first so "##" never matches as "#"
	headingPatterns = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`(?m)^##### (.*)$`), "<h5>$1</h5>"},
		{regexp.MustCompile(`(?m)^#### (.*)$`), "<h4>$1</h4>"},
		{regexp.MustCompile(`(?m)^### (.*)$`), "<h3>$1</h3>"},
		{regexp.MustCompile(`(?m)^## (.*)$`), "<h2>$1</h2>"},
		{regexp.MustCompile(`(?m)^# (.*)$`), "<h1>$1</h1>"},
	}

	boldPattern      = regexp.MustCompile(`\*\*(.*)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.*)\*`)
	imageLinePattern = regexp.MustCompile(`.*!\[.*\]\((.*)\)`)
	linkPattern      = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// RenderInline converts one line of markdown to an HTML fragment.
//
// Only the subset used by study notes is handled: bullets, headings, bold,
// italic, image lines and links. Substitutions run in a fixed order and are
// not nested or escaped.
func RenderInline(line string) string {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "-"):
		line = strings.TrimRight(bulletMarker.ReplaceAllString(line, "${1}"+Bullet), " \t\r\n")
	case strings.HasPrefix(trimmed, "#"):
		line = trimmed
		for _, h := range headingPatterns {
			line = h.re.ReplaceAllString(line, h.repl)
		}
		line = strings.TrimSpace(line)
	}

	return renderEmphasis(line)
}

// renderEmphasis applies bold, italic, image and link rules in that order
func renderEmphasis(line string) string {
	line = boldPattern.ReplaceAllString(line, "<b>$1</b>")
	line = italicPattern.ReplaceAllString(line, "<i>$1</i>")
	line = imageLinePattern.ReplaceAllString(line, "$1")
	line = linkPattern.ReplaceAllString(line, "<a href='$2'>$1</a>")
	return line
}
