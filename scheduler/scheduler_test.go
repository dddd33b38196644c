package scheduler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crownetbrain/config"
)

func testConfig(t *testing.T) config.BrainConfig {
	t.Helper()
	cfg := config.DefaultBrainConfig()
	cfg.Network.N = 50
	cfg.Network.FanIn = 5
	cfg.Network.NInputs = 10
	cfg.Network.NOutputs = 10
	cfg.Network.DelaySteps = 4
	cfg.Steps = 20
	cfg.Seconds = -1.0
	cfg.PrintEveryMS = 1
	cfg.IODir = t.TempDir()
	cfg.Seed = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return cfg
}

func TestNewConstructsScheduler(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	if s.neurons.N != cfg.Network.N {
		t.Errorf("expected %d neurons, got %d", cfg.Network.N, s.neurons.N)
	}
	if s.fabric == nil {
		t.Fatal("expected a non-nil fabric")
	}
}

func TestRunExhaustsStepBudget(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if s.tick != cfg.Steps {
		t.Errorf("expected tick to reach %d, got %d", cfg.Steps, s.tick)
	}
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Steps = 1_000_000_000
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop promptly after context cancellation")
	}
}

func TestRunStopsOnExitCommand(t *testing.T) {
	cfg := testConfig(t)
	cfg.Steps = 1_000_000_000
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	cmdPath := filepath.Join(cfg.IODir, "commands.jsonl")
	if err := os.WriteFile(cmdPath, []byte(`{"cmd":"exit"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after an exit command")
	}
}

func TestStepOnceWritesSpikeAndStatsRecords(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	running := s.stepOnce(1)
	if !running {
		t.Fatal("expected stepOnce to report the loop should continue")
	}
	if s.tick != 1 {
		t.Errorf("expected tick incremented to 1, got %d", s.tick)
	}

	b, err := os.ReadFile(filepath.Join(cfg.IODir, "spikes.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	var rec map[string]any
	if err := json.Unmarshal(b[:len(b)-1], &rec); err != nil {
		t.Fatalf("expected a single valid spike record, got %q: %v", string(b), err)
	}
	if rec["type"] != "spike" {
		t.Errorf("expected spike record type, got %v", rec["type"])
	}

	stats, err := os.ReadFile(filepath.Join(cfg.IODir, "stats.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(stats), "Timestep 0") {
		t.Errorf("expected a stats grid for timestep 0, got %q", string(stats))
	}
}

func TestProcessCommandsAppliesSetHormones(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	cmdPath := filepath.Join(cfg.IODir, "commands.jsonl")
	line := `{"cmd":"set_hormones","data":{"dopamine":1.5,"cortisol":0.8}}` + "\n"
	if err := os.WriteFile(cmdPath, []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	if !s.processCommands() {
		t.Fatal("expected processCommands to report the loop should continue")
	}
	if s.hormone.DriveDopamine != 1.5 {
		t.Errorf("expected dopamine drive 1.5, got %f", s.hormone.DriveDopamine)
	}
	if s.hormone.DriveCortisol != 0.8 {
		t.Errorf("expected cortisol drive 0.8, got %f", s.hormone.DriveCortisol)
	}
}
