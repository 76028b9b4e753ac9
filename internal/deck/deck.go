package deck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arcanaland/ankimark/internal/anki"
	"github.com/arcanaland/ankimark/internal/card"
)

// Separator joins parent and child deck names
const Separator = "::"

// Service is the subset of AnkiConnect the publisher needs
type Service interface {
	Version(ctx context.Context) (int, error)
	CreateDeck(ctx context.Context, name string) (int64, error)
	AddNote(ctx context.Context, note anki.Note) (int64, error)
}

// SubDeckName returns the sub-deck path for a section
func SubDeckName(root, section string) string {
	return root + Separator + strings.TrimSpace(strings.ReplaceAll(section, " ", "_"))
}

// Publisher creates decks and adds notes for parsed sections
type Publisher struct {
	Service Service
	Model   string
	Tags    []string
	Logger  *slog.Logger
}

// NewPublisher creates a publisher for the given note model
func NewPublisher(svc Service, model string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		Service: svc,
		Model:   model,
		Logger:  logger,
	}
}

// Publish creates the root deck, then one sub-deck per section followed by
// that section's notes. Requests are sent one at a time in document order.
//
// Only an unreachable service is fatal. A failed deck or note is logged,
// recorded in the report, and skipped.
func (p *Publisher) Publish(ctx context.Context, root string, sections []card.Section) (*Report, error) {
	if _, err := p.Service.Version(ctx); err != nil {
		return nil, fmt.Errorf("error connecting to AnkiConnect: %w", err)
	}

	report := &Report{Root: root}

	if _, err := p.Service.CreateDeck(ctx, root); err != nil {
		p.Logger.Warn("create deck failed", "deck", root, "error", err)
		report.addFailure(root, "", err)
	}

	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := SubDeckName(root, s.Name)
		sr := SectionReport{Deck: name, Cards: len(s.Cards)}

		if _, err := p.Service.CreateDeck(ctx, name); err != nil {
			p.Logger.Warn("create deck failed", "deck", name, "error", err)
			report.addFailure(name, "", err)
			sr.DeckFailed = true
		} else {
			p.Logger.Debug("deck ready", "deck", name)
		}

		for _, c := range s.Cards {
			note := anki.NewNote(name, p.Model, c, p.Tags)
			if _, err := p.Service.AddNote(ctx, note); err != nil {
				p.Logger.Warn("add note failed", "deck", name, "front", c.Term(), "error", err)
				report.addFailure(name, c.Term(), err)
				sr.Failed++
				continue
			}
			p.Logger.Debug("note added", "deck", name, "front", c.Term(), "images", len(c.Images))
			sr.Added++
		}

		report.Sections = append(report.Sections, sr)
	}

	return report, nil
}
