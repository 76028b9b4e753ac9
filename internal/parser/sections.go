// Package parser turns a markdown study document into sections of flashcards.
package parser

import (
	"regexp"
	"strings"

	"github.com/arcanaland/ankimark/internal/card"
)

var headingMarker = regexp.MustCompile(`(?m)^#+`)

// Block is a heading-delimited piece of the document before card parsing
type Block struct {
	Name string
	Body string
}

// SplitBlocks drops the first skip lines of doc and splits the rest on
// heading markers. The marker run is consumed; the remainder of the heading
// line becomes the block name. Blocks with no content are discarded.
func SplitBlocks(doc string, skip int) []Block {
	lines := splitLines(doc)
	if skip > len(lines) {
		skip = len(lines)
	}
	if skip < 0 {
		skip = 0
	}
	content := strings.Join(lines[skip:], "\n")

	var blocks []Block
	for _, raw := range headingMarker.Split(content, -1) {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		var kept []string
		for _, line := range strings.Split(raw, "\n") {
			if line == "" || (len(kept) == 0 && strings.TrimSpace(line) == "") {
				continue
			}
			kept = append(kept, line)
		}

		name := strings.TrimSpace(kept[0])
		if name == "" {
			name = card.DefaultSection
		}
		blocks = append(blocks, Block{Name: name, Body: strings.Join(kept[1:], "\n")})
	}

	return blocks
}

// Parser turns a study document into sections of cards
type Parser struct {
	SkipLines int    // Leading front-matter lines to ignore
	ImageDir  string // Directory image references resolve to
}

// Parse splits doc into sections and each section into cards
func (p *Parser) Parse(doc string) []card.Section {
	blocks := SplitBlocks(doc, p.SkipLines)
	sections := make([]card.Section, 0, len(blocks))
	for _, b := range blocks {
		sections = append(sections, card.Section{
			Name:  b.Name,
			Cards: SplitCards(b.Body, p.ImageDir),
		})
	}
	return sections
}
