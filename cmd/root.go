package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/ankimark/internal/card"
	"github.com/arcanaland/ankimark/internal/config"
	"github.com/arcanaland/ankimark/internal/parser"
)

var (
	cfgFile string
	verbose bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ankimark",
	Short: "Turn markdown study notes into Anki flashcards",
	Long: `Ankimark converts a markdown study document into Anki flashcards.
Each heading becomes a sub-deck, each ';'-separated "term: definition" entry
becomes a Basic note, and images and tables are carried over to the card back.
Notes are added through the AnkiConnect add-on, which must be running.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/ankimark/config.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every deck and note request")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// addDocumentFlags registers the per-run overrides shared by document commands
func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Markdown document to read (overrides config)")
	cmd.Flags().StringP("deck", "d", "", "Root deck name (overrides config)")
}

// loadConfig loads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("input"); f != nil && f.Changed {
		cfg.Input = f.Value.String()
	}
	if f := cmd.Flags().Lookup("deck"); f != nil && f.Changed {
		cfg.Deck = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a text logger on stderr
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// parseDocument reads and parses the configured input document
func parseDocument(cfg *config.Config) ([]card.Section, error) {
	data, err := os.ReadFile(cfg.Input)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("input document not found: %s", cfg.Input)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading input document: %v", err)
	}

	imageDir, err := cfg.ResolveImageDir()
	if err != nil {
		return nil, err
	}

	p := &parser.Parser{SkipLines: cfg.SkipLines, ImageDir: imageDir}
	return p.Parse(string(data)), nil
}
