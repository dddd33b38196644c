package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"crownetbrain/config"
	"crownetbrain/scheduler"
)

var (
	brainSteps        int64
	brainSeconds      float64
	brainPrintEveryMS int
	brainRealtime     bool
	brainN            int
	brainFanIn        int
	brainNInputs      int
	brainNOutputs     int
	brainIODir        string
	brainDBPath       string
)

var brainCmd = &cobra.Command{
	Use:   "brain",
	Short: "Run the spiking network simulation loop.",
	Long: `brain builds the neuron bank and synapse fabric, then runs the
fixed-dt tick loop: draining commands.jsonl, updating hormones, integrating
neurons and synapses, applying STDP, and logging to spikes.jsonl, log.jsonl,
and stats.jsonl. --steps -1 runs until SIGINT or an exit command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultBrainConfig()

		if configFile != "" {
			if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
				return fmt.Errorf("decode config file %s: %w", configFile, err)
			}
		}

		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("steps") {
			cfg.Steps = brainSteps
		}
		if cmd.Flags().Changed("seconds") {
			cfg.Seconds = brainSeconds
		}
		if cmd.Flags().Changed("print-every-ms") {
			cfg.PrintEveryMS = brainPrintEveryMS
		}
		if cmd.Flags().Changed("realtime") {
			cfg.Realtime = brainRealtime
		}
		if cmd.Flags().Changed("n") {
			cfg.Network.N = brainN
		}
		if cmd.Flags().Changed("fan-in") {
			cfg.Network.FanIn = brainFanIn
		}
		if cmd.Flags().Changed("n-inputs") {
			cfg.Network.NInputs = brainNInputs
		}
		if cmd.Flags().Changed("n-outputs") {
			cfg.Network.NOutputs = brainNOutputs
		}
		if cmd.Flags().Changed("io-dir") {
			cfg.IODir = brainIODir
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = brainDBPath
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid brain configuration: %w", err)
		}

		sched, err := scheduler.New(cfg)
		if err != nil {
			return fmt.Errorf("construct scheduler: %w", err)
		}
		defer sched.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return sched.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(brainCmd)

	d := config.DefaultBrainConfig()

	brainCmd.Flags().Int64Var(&brainSteps, "steps", d.Steps, "number of ticks to run (negative = infinite)")
	brainCmd.Flags().Float64Var(&brainSeconds, "seconds", d.Seconds, "simulated seconds to run, overrides --steps (negative disables)")
	brainCmd.Flags().IntVar(&brainPrintEveryMS, "print-every-ms", d.PrintEveryMS, "logging cadence in simulated milliseconds")
	brainCmd.Flags().BoolVar(&brainRealtime, "realtime", d.Realtime, "pace ticks to wall-clock time instead of running back to back")
	brainCmd.Flags().IntVar(&brainN, "n", d.Network.N, "total neuron count")
	brainCmd.Flags().IntVar(&brainFanIn, "fan-in", d.Network.FanIn, "incoming synapse candidates drawn per post-synaptic neuron")
	brainCmd.Flags().IntVar(&brainNInputs, "n-inputs", d.Network.NInputs, "number of input neurons, indices [0, n-inputs)")
	brainCmd.Flags().IntVar(&brainNOutputs, "n-outputs", d.Network.NOutputs, "number of output neurons, indices [n-n-outputs, n)")
	brainCmd.Flags().StringVar(&brainIODir, "io-dir", d.IODir, "directory holding commands.jsonl, spikes.jsonl, log.jsonl, stats.jsonl")
	brainCmd.Flags().StringVar(&brainDBPath, "db", d.DBPath, "optional SQLite path for a diagnostic tick-snapshot export")
}
