// Package hormone implements the ten-variable relaxation model that drives
// the network's excitability. It is a lerp-to-target integrator, not a
// stiff ODE: every tick, each concentration glides toward a moving target
// that is itself reset or perturbed by a random event timer, so the system
// stays reactive without ever needing a numerical solver.
package hormone

import (
	"math/rand"
)

// clampLevel keeps a hormone concentration inside its safety band.
func clampLevel(v float64) float64 {
	if v < 0.01 {
		return 0.01
	}
	if v > 0.99 {
		return 0.99
	}
	return v
}

// clampDrive keeps an exogenous drive inside its accepted range.
func clampDrive(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}

// Set holds the ten named hormone concentrations. The same shape is reused
// for the current state, the baseline personality, and the drift target, so
// there is exactly one struct definition to reason about.
type Set struct {
	Dopamine      float64
	Serotonin     float64
	Cortisol      float64
	Adrenaline    float64
	Oxytocin      float64
	Melatonin     float64
	Noradrenaline float64
	Endorphin     float64
	Acetylcholine float64
	Testosterone  float64
}

// baselinePersonality is the built-in baseline: cool under pressure, mildly
// bored, socially distant, cognitively sharp. Any other baseline can be
// substituted by constructing State directly with a different BaseConfig.
var baselinePersonality = Set{
	Dopamine:      0.30,
	Serotonin:     0.70,
	Cortisol:      0.10,
	Adrenaline:    0.20,
	Oxytocin:      0.05,
	Melatonin:     0.05,
	Noradrenaline: 0.40,
	Endorphin:     0.10,
	Acetylcholine: 0.85,
	Testosterone:  0.60,
}

// State owns the live hormone vector, its baseline, the current drift
// target, the event timer, and the three exogenous drives. There is no
// package-level mutable state; every simulator owns its own State.
type State struct {
	Current    Set
	BaseConfig Set
	Target     Set

	EventTimer float64

	DriveDopamine   float64
	DriveCortisol   float64
	DriveAdrenaline float64

	rng *rand.Rand
}

// NewState constructs a State seeded with the built-in baseline personality
// and a first mood event scheduled 2 seconds out.
func NewState(rng *rand.Rand) *State {
	return &State{
		Current:    baselinePersonality,
		BaseConfig: baselinePersonality,
		Target:     baselinePersonality,
		EventTimer: 2.0,
		rng:        rng,
	}
}

// SetDopamineDrive writes a bounded exogenous dopamine drive.
func (s *State) SetDopamineDrive(v float64) { s.DriveDopamine = clampDrive(v) }

// SetCortisolDrive writes a bounded exogenous cortisol drive.
func (s *State) SetCortisolDrive(v float64) { s.DriveCortisol = clampDrive(v) }

// SetAdrenalineDrive writes a bounded exogenous adrenaline drive.
func (s *State) SetAdrenalineDrive(v float64) { s.DriveAdrenaline = clampDrive(v) }

func (s *State) randRange(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Update advances the hormone state by one tick of size dt: event
// scheduling, then drive application and cortisol/serotonin antagonism,
// then relaxation toward the effective target, then clamping.
func (s *State) Update(dt float64) {
	s.EventTimer -= dt

	if s.EventTimer <= 0.0 {
		s.EventTimer = s.randRange(2.0, 7.0)

		dice := s.rng.Float64()
		switch {
		case dice < 0.4:
			// Reset to baseline.
			s.Target = s.BaseConfig
		case dice < 0.7:
			// Mild variation around baseline.
			s.Target.Dopamine = s.BaseConfig.Dopamine + s.randRange(-0.1, 0.2)
			s.Target.Serotonin = s.BaseConfig.Serotonin + s.randRange(-0.1, 0.1)
			s.Target.Adrenaline = s.BaseConfig.Adrenaline + s.randRange(-0.05, 0.2)
			s.Target.Acetylcholine = s.BaseConfig.Acetylcholine + s.randRange(-0.1, 0.1)
		default:
			// One of four bold micro-moods.
			switch s.rng.Intn(4) {
			case 0: // Eureka
				s.Target.Dopamine = 0.9
				s.Target.Acetylcholine = 0.95
				s.Target.Adrenaline = 0.5
			case 1: // Annoyed
				s.Target.Cortisol = 0.6
				s.Target.Serotonin = 0.2
				s.Target.Dopamine = 0.1
			case 2: // Manic
				s.Target.Adrenaline = 0.8
				s.Target.Testosterone = 0.8
				s.Target.Noradrenaline = 0.7
			case 3: // Crash
				s.Target.Dopamine = 0.05
				s.Target.Melatonin = 0.4
				s.Target.Acetylcholine = 0.3
			}
		}
	}

	effective := s.Target
	if s.DriveDopamine > 0.01 {
		effective.Dopamine += s.DriveDopamine
	}
	if s.DriveAdrenaline > 0.01 {
		effective.Adrenaline += s.DriveAdrenaline
	}
	if s.DriveCortisol > 0.01 {
		effective.Cortisol += s.DriveCortisol
	}

	if effective.Cortisol > 0.5 {
		effective.Serotonin *= 0.5
	}

	const speed = 0.05
	lerp := func(current, target float64) float64 {
		return current + (target-current)*speed*dt
	}

	s.Current.Dopamine = lerp(s.Current.Dopamine, effective.Dopamine)
	s.Current.Serotonin = lerp(s.Current.Serotonin, effective.Serotonin)
	s.Current.Cortisol = lerp(s.Current.Cortisol, effective.Cortisol)
	s.Current.Adrenaline = lerp(s.Current.Adrenaline, effective.Adrenaline)
	s.Current.Oxytocin = lerp(s.Current.Oxytocin, effective.Oxytocin)
	s.Current.Melatonin = lerp(s.Current.Melatonin, effective.Melatonin)
	s.Current.Noradrenaline = lerp(s.Current.Noradrenaline, effective.Noradrenaline)
	s.Current.Endorphin = lerp(s.Current.Endorphin, effective.Endorphin)
	s.Current.Acetylcholine = lerp(s.Current.Acetylcholine, effective.Acetylcholine)
	s.Current.Testosterone = lerp(s.Current.Testosterone, effective.Testosterone)

	s.Current.Dopamine = clampLevel(s.Current.Dopamine)
	s.Current.Serotonin = clampLevel(s.Current.Serotonin)
	s.Current.Cortisol = clampLevel(s.Current.Cortisol)
	s.Current.Adrenaline = clampLevel(s.Current.Adrenaline)
	s.Current.Oxytocin = clampLevel(s.Current.Oxytocin)
	s.Current.Melatonin = clampLevel(s.Current.Melatonin)
	s.Current.Noradrenaline = clampLevel(s.Current.Noradrenaline)
	s.Current.Endorphin = clampLevel(s.Current.Endorphin)
	s.Current.Acetylcholine = clampLevel(s.Current.Acetylcholine)
	s.Current.Testosterone = clampLevel(s.Current.Testosterone)
}

// Snapshot returns the current hormone levels as a name-keyed map, the
// shared representation consumed by both the spike-log writer and the
// coach's prompt builder.
func (s *State) Snapshot() map[string]float64 {
	return map[string]float64{
		"dopamine":      s.Current.Dopamine,
		"serotonin":     s.Current.Serotonin,
		"cortisol":      s.Current.Cortisol,
		"adrenaline":    s.Current.Adrenaline,
		"oxytocin":      s.Current.Oxytocin,
		"melatonin":     s.Current.Melatonin,
		"noradrenaline": s.Current.Noradrenaline,
		"endorphin":     s.Current.Endorphin,
		"acetylcholine": s.Current.Acetylcholine,
		"testosterone":  s.Current.Testosterone,
	}
}

// HormoneNames lists the ten concentrations in a stable, deterministic
// order, useful for formatting logs and prompts without map iteration.
var HormoneNames = []string{
	"dopamine", "serotonin", "cortisol", "adrenaline", "oxytocin",
	"melatonin", "noradrenaline", "endorphin", "acetylcholine", "testosterone",
}
