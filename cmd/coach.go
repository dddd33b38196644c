package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"crownetbrain/coach"
	"crownetbrain/config"
)

var (
	coachIODir    string
	coachPollMS   int
	coachLLMURL   string
	coachSeqStart int
	coachOffline  bool
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Tail the brain's spike log and close the reinforcement loop.",
	Long: `coach polls spikes.jsonl for the latest hormone reading, builds a
prompt describing the current mood, completes it against a language model
(or, with --offline, a canned local responder), classifies the reply into a
reward/punish/none verdict, and appends a set_hormones command back to
commands.jsonl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultCoachConfig()

		if configFile != "" {
			if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
				return fmt.Errorf("decode config file %s: %w", configFile, err)
			}
		}

		if cmd.Flags().Changed("io-dir") {
			cfg.IODir = coachIODir
		}
		if cmd.Flags().Changed("poll-ms") {
			cfg.PollMS = coachPollMS
		}
		if cmd.Flags().Changed("llm-url") {
			cfg.LLMURL = coachLLMURL
		}
		if cmd.Flags().Changed("seq-start") {
			cfg.SeqStart = coachSeqStart
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid coach configuration: %w", err)
		}

		var client coach.Client
		if coachOffline || cfg.LLMURL == "" {
			client = coach.EchoClient{}
		} else {
			client = coach.NewHTTPClient(cfg.LLMURL)
		}

		runner, err := coach.NewRunner(cfg.IODir, client, cfg.SeqStart)
		if err != nil {
			return fmt.Errorf("construct coach runner: %w", err)
		}
		runner.OnPoll(func(d coach.Decision) {
			fmt.Fprintf(os.Stdout, "[coach] feedback=%s intensity=%.2f reply=%q\n", d.Feedback, d.Intensity, d.Reply)
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner.Run(ctx, time.Duration(cfg.PollMS)*time.Millisecond, func(err error) {
			fmt.Fprintf(os.Stderr, "[coach] poll error: %v\n", err)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coachCmd)

	d := config.DefaultCoachConfig()

	coachCmd.Flags().StringVar(&coachIODir, "io-dir", d.IODir, "directory holding the brain's JSONL journals")
	coachCmd.Flags().IntVar(&coachPollMS, "poll-ms", d.PollMS, "polling interval in milliseconds")
	coachCmd.Flags().StringVar(&coachLLMURL, "llm-url", d.LLMURL, "completion endpoint URL (empty runs offline)")
	coachCmd.Flags().IntVar(&coachSeqStart, "seq-start", d.SeqStart, "starting sequence number for written commands")
	coachCmd.Flags().BoolVar(&coachOffline, "offline", false, "force the canned offline responder even if --llm-url is set")
}
