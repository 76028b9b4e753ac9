package card

import "strings"

// Note field names understood by the Basic model
const (
	FieldFront = "Front"
	FieldBack  = "Back"
)

// DefaultFront is used when a term line has no usable text
const DefaultFront = "Card"

// DefaultSection is used when a block has no name line
const DefaultSection = "Section"

// ImageRef is a local image attached to one or more note fields
type ImageRef struct {
	SourcePath   string   // Resolved local path (e.g., /home/me/notes/img/aes.png)
	Filename     string   // Last segment of the markdown image target
	TargetFields []string // Note fields the image is attached to
}

// Card is one flashcard rendered to HTML
type Card struct {
	Front  string // HTML, never empty
	Back   string // HTML
	Images []ImageRef
}

// Section is a heading-delimited block of cards
type Section struct {
	Name  string
	Cards []Card
}

// CountCards returns the number of cards across all sections
func CountCards(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Cards)
	}
	return n
}

// Term returns the front without its heading tag
func (c Card) Term() string {
	return strings.TrimSuffix(strings.TrimPrefix(c.Front, "<h2>"), "</h2>")
}
