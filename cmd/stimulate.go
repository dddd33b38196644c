package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"crownetbrain/coach"
	"crownetbrain/pattern"
)

var (
	stimulateIODir   string
	stimulateDigit   int
	stimulateText    string
	stimulateNInputs int
)

var stimulateCmd = &cobra.Command{
	Use:   "stimulate",
	Short: "Append one input_pattern command to a running brain's journal.",
	Long: `stimulate writes a single input_pattern command to commands.jsonl:
either a fixed digit bitmap (--digit) or a text-seeded random pattern
(--text), exercising the external stimulus path end to end without a
hand-written JSON line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		writer, err := coach.NewCommandWriter(filepath.Join(stimulateIODir, "commands.jsonl"))
		if err != nil {
			return fmt.Errorf("open commands.jsonl: %w", err)
		}

		var pat []int
		if cmd.Flags().Changed("text") {
			pat = pattern.FromText(stimulateText, stimulateNInputs)
		} else {
			pat, err = pattern.Digit(stimulateDigit, stimulateNInputs)
			if err != nil {
				return err
			}
		}

		if err := writer.WriteInputPattern(pat, 0); err != nil {
			return fmt.Errorf("write input_pattern command: %w", err)
		}
		fmt.Printf("wrote input_pattern (%d cells) to %s\n", len(pat), stimulateIODir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stimulateCmd)

	stimulateCmd.Flags().StringVar(&stimulateIODir, "io-dir", "./io", "directory holding the brain's commands.jsonl")
	stimulateCmd.Flags().IntVar(&stimulateDigit, "digit", 0, "digit 0-9 to render as an input pattern")
	stimulateCmd.Flags().StringVar(&stimulateText, "text", "", "if set, derive the pattern from this text instead of --digit")
	stimulateCmd.Flags().IntVar(&stimulateNInputs, "n-inputs", 120, "input neuron count to size the pattern for")
}
