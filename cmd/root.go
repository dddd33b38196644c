// Package cmd wires the Cobra CLI surface for the brain and coach
// processes: flag parsing, TOML overlay, and dispatch into the scheduler
// and coach packages. No simulation logic lives here.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// configFile, when set, overlays a TOML file under the CLI flags for
	// whichever subcommand is running.
	configFile string
	// seed is the persistent RNG seed flag; 0 means "use the current time".
	seed int64
)

var rootCmd = &cobra.Command{
	Use:   "crownetbrain",
	Short: "A hormone-modulated spiking network and its coaching loop.",
	Long: `crownetbrain runs a leaky-integrate-and-fire spiking network whose
excitability is driven by a ten-hormone state vector (the "brain" command),
and a coach process that tails its spike log, prompts a language model, and
writes hormonal-drive commands back (the "coach" command).`,
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "configFile", "", "path to a TOML config file overlaying defaults and flags")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "RNG seed (0 uses the current time)")
}
