package deck

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SectionReport holds the outcome for one sub-deck
type SectionReport struct {
	Deck       string
	Cards      int
	Added      int
	Failed     int
	DeckFailed bool
}

// Failure is one request that did not succeed
type Failure struct {
	Deck  string
	Front string // empty for deck creation failures
	Err   string
}

// Report summarises a publish run
type Report struct {
	Root     string
	Sections []SectionReport
	Failures []Failure
}

func (r *Report) addFailure(deck, front string, err error) {
	r.Failures = append(r.Failures, Failure{Deck: deck, Front: front, Err: err.Error()})
}

// Totals returns the number of cards, added notes and failed notes
func (r *Report) Totals() (cards, added, failed int) {
	for _, s := range r.Sections {
		cards += s.Cards
		added += s.Added
		failed += s.Failed
	}
	return cards, added, failed
}

// OK reports whether every deck and note was created
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Render writes the per-deck summary table followed by the failures
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Deck", "Cards", "Added", "Failed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, s := range r.Sections {
		name := s.Deck
		if s.DeckFailed {
			name += " (deck not created)"
		}
		t.AppendRow(table.Row{name, s.Cards, s.Added, s.Failed})
	}

	cards, added, failed := r.Totals()
	t.AppendFooter(table.Row{"Total", cards, added, failed})
	t.Render()

	if len(r.Failures) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%d request(s) failed:\n", len(r.Failures))
	for i, f := range r.Failures {
		if f.Front == "" {
			_, _ = fmt.Fprintf(w, "%d. create deck %s: %s\n", i+1, f.Deck, f.Err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%d. %s / %s: %s\n", i+1, f.Deck, f.Front, f.Err)
	}
}
