package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arcanaland/ankimark/internal/anki"
	"github.com/arcanaland/ankimark/internal/config"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks in your Anki collection",
	Long:  `Commands for listing and creating decks through AnkiConnect.`,
}

// deckListCmd represents the deck ls command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the decks in your Anki collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		names, err := newClient(cfg).DeckNames(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing decks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No decks found in your collection.")
			return nil
		}

		sort.Strings(names)
		for _, name := range names {
			if name == cfg.Deck {
				fmt.Fprintf(out, "* %s [DEFAULT]\n", name)
			} else {
				fmt.Fprintf(out, "  %s\n", name)
			}
		}
		return nil
	},
}

// deckCreateCmd represents the deck create command
var deckCreateCmd = &cobra.Command{
	Use:   "create [deck_name]",
	Short: "Create a deck (use Parent::Child for sub-decks)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		deckName := args[0]
		id, err := newClient(cfg).CreateDeck(cmd.Context(), deckName)
		if err != nil {
			return fmt.Errorf("error creating deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deck ready: %s (id %d)\n", deckName, id)
		return nil
	},
}

func newClient(cfg *config.Config) *anki.Client {
	return anki.NewClient(cfg.Endpoint, cfg.APIVersion, anki.WithTimeout(cfg.Timeout))
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckCreateCmd)
}
