// Package scheduler drives the fixed-dt simulation loop: per-tick ordering
// of command ingestion, hormone update, neuron/synapse integration, STDP,
// and logging cadence, plus the realtime wall-clock accumulator mode.
package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"crownetbrain/config"
	"crownetbrain/hormone"
	"crownetbrain/journal"
	"crownetbrain/neuron"
	"crownetbrain/snapshot"
	"crownetbrain/synapse"
)

const maxStepsPerFrame = 2000

// Scheduler owns every piece of live simulator state: the RNG, the hormone
// system, the neuron bank, the synapse fabric, and the journal handle. There
// is no package-level mutable state — each run constructs its own Scheduler.
type Scheduler struct {
	cfg config.BrainConfig

	rng      *rand.Rand
	hormone  *hormone.State
	neurons  *neuron.Bank
	fabric   *synapse.Fabric
	jrnl     *journal.Journal
	exporter *snapshot.Exporter

	tick int64
}

// New constructs a Scheduler from a validated BrainConfig: it builds the
// neuron bank and synapse fabric, opens the journal directory, and
// optionally opens a SQLite snapshot exporter when cfg.DBPath is set.
func New(cfg config.BrainConfig) (*Scheduler, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	bank := neuron.NewBank(cfg.Network.N, cfg.Network.NInputs, cfg.Network.NOutputs)
	bank.Dt = cfg.Network.DtSeconds

	fabric := synapse.Build(rng, cfg.Network.N, cfg.Network.FanIn, cfg.Network.DelaySteps, bank)

	jrnl, err := journal.Open(cfg.IODir)
	if err != nil {
		return nil, fmt.Errorf("scheduler: open journal: %w", err)
	}

	var exporter *snapshot.Exporter
	if cfg.DBPath != "" {
		exporter, err = snapshot.NewExporter(cfg.DBPath)
		if err != nil {
			jrnl.Close()
			return nil, fmt.Errorf("scheduler: open snapshot exporter: %w", err)
		}
	}

	return &Scheduler{
		cfg:      cfg,
		rng:      rng,
		hormone:  hormone.NewState(rng),
		neurons:  bank,
		fabric:   fabric,
		jrnl:     jrnl,
		exporter: exporter,
	}, nil
}

// Close releases the journal and, if open, the snapshot exporter.
func (s *Scheduler) Close() error {
	var errs []error
	if s.exporter != nil {
		if err := s.exporter.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.jrnl.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("scheduler: close errors: %v", errs)
	}
	return nil
}

// Run executes the tick loop until ctx is cancelled (SIGINT), an `exit`
// command is received, or the configured step budget is exhausted. It never
// returns an error for in-loop failures — those are logged and the loop
// continues, per the "nothing in the simulation loop is fatal" contract.
func (s *Scheduler) Run(ctx context.Context) error {
	steps := s.cfg.ResolveSteps()
	infinite := steps < 0

	s.jrnl.LogStatus("brain initialized")
	defer s.jrnl.LogStatus("brain stopped")

	printEverySteps := int64(1)
	if perTick := (float64(s.cfg.PrintEveryMS) / 1000.0) / s.cfg.Network.DtSeconds; perTick > 1 {
		printEverySteps = int64(perTick)
	}

	dt := s.cfg.Network.DtSeconds
	dtDur := time.Duration(dt * float64(time.Second))

	running := true
	var acc time.Duration
	last := time.Now()

	for running && (infinite || s.tick < steps) {
		select {
		case <-ctx.Done():
			running = false
			continue
		default:
		}

		if s.cfg.Realtime {
			now := time.Now()
			acc += now.Sub(last)
			last = now

			framesThisLoop := 0
			for acc >= dtDur && framesThisLoop < maxStepsPerFrame && running && (infinite || s.tick < steps) {
				running = s.stepOnce(printEverySteps)
				acc -= dtDur
				framesThisLoop++

				select {
				case <-ctx.Done():
					running = false
				default:
				}
			}
			if framesThisLoop == 0 {
				time.Sleep(time.Millisecond)
			}
		} else {
			running = s.stepOnce(printEverySteps)
		}
	}

	return nil
}

// stepOnce executes exactly one tick in the order the log stream's ordering
// guarantee depends on, and reports whether the loop should keep running.
func (s *Scheduler) stepOnce(printEverySteps int64) bool {
	running := s.processCommands()

	dt := s.neurons.Dt

	s.hormone.Update(dt)
	s.neurons.ApplyHormones(s.hormone)
	s.fabric.CollectDelayedToIsyn(s.neurons)
	s.fabric.InjectInputs(s.rng, s.neurons)
	s.fabric.RouteSpikes(s.neurons)
	s.neurons.Step()

	s.fabric.DecayTraces(dt)
	s.fabric.ApplyUpdates(s.neurons, s.hormone)

	s.fabric.AdvanceRPos()

	spikeCount := 0
	for _, v := range s.neurons.Spk {
		spikeCount += v
	}

	if s.tick%printEverySteps == 0 {
		if err := s.jrnl.LogStatsGrid(s.neurons.Spk, s.tick, s.cfg.Network.NInputs, s.cfg.Network.NOutputs); err != nil {
			s.jrnl.LogError(fmt.Sprintf("stats grid write failed: %v", err))
		}
		if err := s.jrnl.LogSpike(s.tick, spikeCount, s.hormone.Snapshot(), hormone.HormoneNames); err != nil {
			s.jrnl.LogError(fmt.Sprintf("spike log write failed: %v", err))
		}
		if s.exporter != nil {
			if err := s.exporter.Record(s.tick, spikeCount, s.hormone.Snapshot()); err != nil {
				s.jrnl.LogError(fmt.Sprintf("snapshot export failed: %v", err))
			}
		}
	}

	s.tick++
	return running
}

// processCommands drains newly appended command lines and dispatches them;
// malformed lines are logged as error records without stopping the batch.
func (s *Scheduler) processCommands() bool {
	cmds, malformed, err := s.jrnl.ReadNewCommands()
	if err != nil {
		s.jrnl.LogError(fmt.Sprintf("command read failed: %v", err))
		return true
	}
	for _, m := range malformed {
		s.jrnl.LogError(m)
	}

	running := true
	for _, c := range cmds {
		switch c.Cmd {
		case "set_hormones":
			if v, ok := numeric(c.Data["dopamine"]); ok {
				s.hormone.SetDopamineDrive(v)
			}
			if v, ok := numeric(c.Data["cortisol"]); ok {
				s.hormone.SetCortisolDrive(v)
			}
			if v, ok := numeric(c.Data["adrenaline"]); ok {
				s.hormone.SetAdrenalineDrive(v)
			}
			s.jrnl.LogStatus("hormone drives updated via command")
		case "input_pattern", "input":
			pattern := intSlice(c.Data["pattern"])
			if len(pattern) > 0 {
				s.fabric.ArmInputPattern(pattern)
				s.jrnl.LogStatus("external input pattern applied")
			}
		case "exit":
			s.jrnl.LogStatus("exit command received")
			running = false
		}
	}
	return running
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func intSlice(v any) []int {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, len(raw))
	for i, e := range raw {
		if f, ok := numeric(e); ok && f != 0 {
			out[i] = 1
		}
	}
	return out
}
