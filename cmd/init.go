package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/ankimark/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.GetConfigFilePath()
		}

		cfg, created, err := config.WriteDefaultConfig(path)
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		out := cmd.OutOrStdout()
		if created {
			fmt.Fprintln(out, "Config file initialized at:", path)
		} else {
			fmt.Fprintln(out, "Config file already exists at:", path)
		}
		fmt.Fprintf(out, "Input: %s\nDeck:  %s\n", cfg.Input, cfg.Deck)
		fmt.Fprintln(out, "Edit it to point at your notes, then run 'ankimark validate'.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
