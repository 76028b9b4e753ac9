package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/ankimark/internal/card"
	"github.com/arcanaland/ankimark/internal/deck"
	"github.com/arcanaland/ankimark/internal/preview"
)

// Size of image thumbnails in character cells
const (
	thumbWidth  = 40
	thumbHeight = 20
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the cards that would be imported",
	Long: `Preview parses the markdown document and prints every card in the terminal
without contacting Anki. Card HTML is flattened to text and wrapped to the
terminal width.

Examples:
  ankimark preview
  ankimark preview --summary
  ankimark preview --section Hashing --images`,
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

		filter, _ := cmd.Flags().GetString("section")
		if filter != "" {
			sections = filterSections(sections, filter)
			if len(sections) == 0 {
				return fmt.Errorf("no section matches %q", filter)
			}
		}

		out := cmd.OutOrStdout()

		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			renderOverview(out, cfg.Deck, sections)
			return nil
		}

		showImages, _ := cmd.Flags().GetBool("images")
		width := terminalWidth()
		for _, s := range sections {
			displaySection(out, deck.SubDeckName(cfg.Deck, s.Name), s, width, showImages)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)
	addDocumentFlags(previewCmd)

	previewCmd.Flags().StringP("section", "s", "", "Only show sections whose name contains this text")
	previewCmd.Flags().Bool("summary", false, "Print one table row per section instead of every card")
	previewCmd.Flags().Bool("images", false, "Render attached images as ANSI art")
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// filterSections keeps sections whose name contains text, ignoring case
func filterSections(sections []card.Section, text string) []card.Section {
	var kept []card.Section
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(text)) {
			kept = append(kept, s)
		}
	}
	return kept
}

// renderOverview prints the deck each section maps to with its card counts
func renderOverview(w io.Writer, root string, sections []card.Section) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Deck", "Cards", "Images"})

	var cards, images int
	for _, s := range sections {
		n := 0
		for _, c := range s.Cards {
			n += len(c.Images)
		}
		t.AppendRow(table.Row{s.Name, deck.SubDeckName(root, s.Name), len(s.Cards), n})
		cards += len(s.Cards)
		images += n
	}

	t.AppendFooter(table.Row{"Total", root, cards, images})
	t.Render()
}

// displaySection prints every card of a section
func displaySection(w io.Writer, deckName string, s card.Section, width int, showImages bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, colorize.CyanString("Section: ")+colorize.HiWhiteString("%s", s.Name))
	fmt.Fprintln(w, colorize.CyanString("Deck:    ")+colorize.HiWhiteString("%s", deckName))
	fmt.Fprintln(w, colorize.CyanString("Cards:   ")+colorize.HiWhiteString("%d", len(s.Cards)))

	// Leave a small margin for the indent
	textWidth := width - 6
	if textWidth < 20 {
		textWidth = 20
	}

	for i, c := range s.Cards {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s %s\n", colorize.YellowString("%d.", i+1), colorize.HiWhiteString("%s", preview.HTMLText(c.Front)))

		for _, line := range preview.Wrap(preview.HTMLText(c.Back), textWidth) {
			fmt.Fprintf(w, "     %s\n", line)
		}

		for _, img := range c.Images {
			fmt.Fprintf(w, "     %s %s\n", colorize.CyanString("Image:"), img.Filename)
			if !showImages {
				continue
			}
			art, err := preview.LoadImageANSI(img.SourcePath, thumbWidth, thumbHeight)
			if err != nil {
				fmt.Fprintf(w, "     %s\n", colorize.RedString("%v", err))
				continue
			}
			for _, line := range strings.Split(strings.TrimSuffix(art, "\n"), "\n") {
				fmt.Fprintf(w, "     %s\n", line)
			}
		}
	}
}
