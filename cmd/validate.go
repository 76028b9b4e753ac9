package cmd

import (
	"fmt"

	"github.com/arcanaland/ankimark/internal/card"
	"github.com/arcanaland/ankimark/internal/validator"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the markdown document before importing it",
	Long: `Validate parses the markdown document without contacting Anki and reports
problems: missing image files are errors; empty sections, cards without a
term or back, and duplicate terms are warnings.`,
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

		results := validator.NewValidator(sections).Validate()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ '%s' is valid: %d sections, %d cards.\n",
				cfg.Input, len(sections), card.CountCards(sections))
		} else {
			fmt.Fprintf(out, "❌ '%s' has %d validation errors:\n", cfg.Input, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
	addDocumentFlags(validateCmd)
}
