// Package config provides the application configuration for the brain and
// coach processes: construction defaults, tick/logging parameters, and the
// TOML struct tags that cmd decodes config files into, layered under CLI
// flags.
package config

import (
	"fmt"
	"time"
)

// Construction defaults, per the network's data model.
const (
	DefaultN            = 1000
	DefaultFanIn        = 30
	DefaultNInputs      = 120
	DefaultNOutputs     = 120
	DefaultDelaySteps   = 16
	DefaultDtSeconds    = 0.001
	DefaultPrintEveryMS = 100
)

// NetworkParameters controls population size and wiring: a plain struct
// of tunables, validated separately from the CLI-derived BrainConfig.
type NetworkParameters struct {
	N          int     `toml:"n"`
	FanIn      int     `toml:"fan_in"`
	NInputs    int     `toml:"n_inputs"`
	NOutputs   int     `toml:"n_outputs"`
	DelaySteps int     `toml:"delay_steps"`
	DtSeconds  float64 `toml:"dt_seconds"`
}

// DefaultNetworkParameters returns the construction defaults: N=1000,
// fan_in=30, 120 input neurons, 120 output neurons.
func DefaultNetworkParameters() NetworkParameters {
	return NetworkParameters{
		N:          DefaultN,
		FanIn:      DefaultFanIn,
		NInputs:    DefaultNInputs,
		NOutputs:   DefaultNOutputs,
		DelaySteps: DefaultDelaySteps,
		DtSeconds:  DefaultDtSeconds,
	}
}

// Validate checks NetworkParameters for internal consistency.
func (p *NetworkParameters) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("n must be positive, got %d", p.N)
	}
	if p.FanIn <= 0 {
		return fmt.Errorf("fan_in must be positive, got %d", p.FanIn)
	}
	if p.FanIn >= p.N {
		return fmt.Errorf("fan_in (%d) must be smaller than n (%d)", p.FanIn, p.N)
	}
	if p.NInputs < 0 || p.NOutputs < 0 {
		return fmt.Errorf("n_inputs and n_outputs must be non-negative")
	}
	if p.NInputs+p.NOutputs > p.N {
		return fmt.Errorf("n_inputs (%d) + n_outputs (%d) must not exceed n (%d)", p.NInputs, p.NOutputs, p.N)
	}
	if p.DelaySteps <= 0 {
		return fmt.Errorf("delay_steps must be positive, got %d", p.DelaySteps)
	}
	if p.DtSeconds <= 0 {
		return fmt.Errorf("dt_seconds must be positive, got %f", p.DtSeconds)
	}
	return nil
}

// BrainConfig aggregates the CLI-facing settings for the `brain` run: the
// scheduler's step budget, logging cadence, journal directory, and the
// network's construction parameters: a flat struct of flag-backed fields
// plus TOML tags for file overlay.
type BrainConfig struct {
	Network NetworkParameters `toml:"network"`

	Steps        int64   `toml:"steps"`
	Seconds      float64 `toml:"seconds"`
	PrintEveryMS int     `toml:"print_every_ms"`
	Realtime     bool    `toml:"realtime"`
	IODir        string  `toml:"io_dir"`
	Seed         int64   `toml:"seed"`
	DBPath       string  `toml:"db_path"`
}

// DefaultBrainConfig returns the defaults named in the CLI surface: 2000
// steps, no --seconds override, print every 100ms, non-realtime.
func DefaultBrainConfig() BrainConfig {
	return BrainConfig{
		Network:      DefaultNetworkParameters(),
		Steps:        2000,
		Seconds:      -1.0,
		PrintEveryMS: DefaultPrintEveryMS,
		Realtime:     false,
		IODir:        "./io",
	}
}

// Validate checks BrainConfig for consistency and fills an unset seed
// from the wall clock.
func (c *BrainConfig) Validate() error {
	if err := c.Network.Validate(); err != nil {
		return fmt.Errorf("invalid network parameters: %w", err)
	}
	if c.PrintEveryMS < 1 {
		c.PrintEveryMS = 1
	}
	if c.IODir == "" {
		return fmt.Errorf("io_dir must be set")
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return nil
}

// ResolveSteps turns a non-negative --seconds override into a step count,
// matching the CLI contract: "--seconds S (overrides --steps)".
func (c *BrainConfig) ResolveSteps() int64 {
	if c.Seconds >= 0.0 {
		return int64(c.Seconds / c.Network.DtSeconds)
	}
	return c.Steps
}

// CoachConfig aggregates the CLI-facing settings for the `coach` run.
type CoachConfig struct {
	IODir    string `toml:"io_dir"`
	PollMS   int    `toml:"poll_ms"`
	LLMURL   string `toml:"llm_url"`
	SeqStart int    `toml:"seq_start"`
}

// DefaultCoachConfig returns sensible coach defaults; an empty LLMURL
// selects the offline echo client.
func DefaultCoachConfig() CoachConfig {
	return CoachConfig{
		IODir:    "./io",
		PollMS:   500,
		LLMURL:   "",
		SeqStart: 1,
	}
}

// Validate checks CoachConfig for consistency.
func (c *CoachConfig) Validate() error {
	if c.IODir == "" {
		return fmt.Errorf("io_dir must be set")
	}
	if c.PollMS < 1 {
		c.PollMS = 1
	}
	if c.SeqStart < 0 {
		return fmt.Errorf("seq_start must be non-negative, got %d", c.SeqStart)
	}
	return nil
}
