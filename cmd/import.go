package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/ankimark/internal/card"
	"github.com/arcanaland/ankimark/internal/deck"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse the document and add its cards to Anki",
	Long: `Import parses the configured markdown document and sends it to AnkiConnect.

The root deck is created first, then one sub-deck per section followed by the
section's notes, in document order. A note that Anki rejects is reported and
skipped; the import only stops early if AnkiConnect cannot be reached.

Examples:
  ankimark import
  ankimark import --input Networking.md --deck WGU_Networking`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sections, err := parseDocument(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Parsed %s: %s, %s\n",
			cfg.Input,
			colorize.HiWhiteString("%d sections", len(sections)),
			colorize.HiWhiteString("%d cards", card.CountCards(sections)))

		publisher := deck.NewPublisher(newClient(cfg), cfg.Model, newLogger(cmd))
		publisher.Tags = cfg.Tags

		report, err := publisher.Publish(cmd.Context(), cfg.Deck, sections)
		if err != nil && report == nil {
			return fmt.Errorf("%w\nIs Anki running with the AnkiConnect add-on at %s?", err, cfg.Endpoint)
		}
		if err != nil {
			// interrupted part way through
			report.Render(out)
			return err
		}

		fmt.Fprintln(out)
		report.Render(out)

		if report.OK() {
			fmt.Fprintf(out, "✅ Imported into deck '%s'.\n", cfg.Deck)
		} else {
			fmt.Fprintf(out, "❌ Import into deck '%s' finished with %d failed request(s).\n", cfg.Deck, len(report.Failures))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
	addDocumentFlags(importCmd)
}
