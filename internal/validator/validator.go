package validator

import (
	"fmt"
	"os"

	"github.com/arcanaland/ankimark/internal/card"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	Sections []card.Section
	Results  ValidationResults
}

func NewValidator(sections []card.Section) *Validator {
	return &Validator{
		Sections: sections,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() ValidationResults {
	if len(v.Sections) == 0 {
		v.Results.Errors = append(v.Results.Errors, "no sections found (check skip_lines and heading markers)")
		return v.Results
	}

	for _, s := range v.Sections {
		v.validateSection(s)
	}

	return v.Results
}

// validateSection checks the cards of one section
func (v *Validator) validateSection(s card.Section) {
	if len(s.Cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("section %q has no cards", s.Name))
		return
	}

	seen := make(map[string]bool)
	for i, c := range s.Cards {
		term := c.Term()

		if term == card.DefaultFront {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("section %q card %d has no term", s.Name, i+1))
		}

		if seen[term] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("section %q has duplicate term %q", s.Name, term))
		}
		seen[term] = true

		if c.Back == "" && len(c.Images) == 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("section %q term %q has an empty back", s.Name, term))
		}

		v.validateImages(s.Name, term, c.Images)
	}
}

// validateImages checks that every referenced image exists on disk
func (v *Validator) validateImages(section, term string, images []card.ImageRef) {
	for _, img := range images {
		info, err := os.Stat(img.SourcePath)
		switch {
		case os.IsNotExist(err):
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("image not found: %s (section %q, term %q)", img.SourcePath, section, term))
		case err != nil:
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("error reading image %s: %v", img.SourcePath, err))
		case info.IsDir():
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("image path is a directory: %s", img.SourcePath))
		}
	}
}
