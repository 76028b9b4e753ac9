package parser

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arcanaland/ankimark/internal/card"
)

// MinChunkLength is the shortest chunk (in characters) that becomes a card.
// Anything shorter is left over from stray delimiters.
const MinChunkLength = 5

const (
	cardDelimiter = ";"
	termSeparator = ":"
	lineBreak     = "<br>"
)

var imagePattern = regexp.MustCompile(`!\[(.*)\]\((.*)\)`)

// SplitCards splits a section body into cards.
// Image paths are resolved against imageDir.
func SplitCards(body, imageDir string) []card.Card {
	var cards []card.Card
	for _, chunk := range strings.Split(body, cardDelimiter) {
		if utf8.RuneCountInString(chunk) < MinChunkLength || strings.TrimSpace(chunk) == "" {
			continue
		}
		cards = append(cards, ParseCard(chunk, imageDir))
	}
	return cards
}

// ParseCard builds a card from one delimiter-bounded chunk
func ParseCard(chunk, imageDir string) card.Card {
	lines := splitLines(strings.TrimSpace(chunk))

	key, value, _ := strings.Cut(strings.TrimSpace(lines[0]), termSeparator)
	body := append([]string{strings.TrimSpace(value)}, lines[1:]...)

	c := card.Card{Front: renderFront(key)}

	var back []string
	for _, line := range body {
		if strings.TrimSpace(line) == "" || IsTableLine(line) {
			continue
		}

		if ref, ok := imageRef(line, imageDir); ok {
			c.Images = append(c.Images, ref)
			continue
		}

		back = append(back, RenderInline(strings.TrimRight(line, " \t")))
	}

	c.Back = strings.Join(back, lineBreak)
	if table := ExtractTable(splitLines(chunk)); table != "" {
		c.Back += lineBreak + table
	}

	return c
}

// renderFront strips emphasis and a bullet marker and wraps the term in <h2>
func renderFront(key string) string {
	term := strings.TrimSpace(strings.ReplaceAll(key, "*", ""))
	term = strings.TrimSpace(strings.TrimPrefix(term, "-"))
	if term == "" {
		term = card.DefaultFront
	}
	return "<h2>" + term + "</h2>"
}

// imageRef returns the image referenced by a markdown image line
func imageRef(line, imageDir string) (card.ImageRef, bool) {
	m := imagePattern.FindStringSubmatch(line)
	if m == nil {
		return card.ImageRef{}, false
	}

	target := strings.TrimSpace(m[2])
	filename := target[strings.LastIndex(target, "/")+1:]

	return card.ImageRef{
		SourcePath:   filepath.Join(imageDir, filename),
		Filename:     filename,
		TargetFields: []string{card.FieldBack},
	}, true
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
