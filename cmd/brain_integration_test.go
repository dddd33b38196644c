package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBrainCommandRunsToCompletion(t *testing.T) {
	tmp := t.TempDir()

	rootCmd.SetArgs([]string{
		"brain",
		"--steps", "5",
		"--n", "20",
		"--fan-in", "4",
		"--n-inputs", "4",
		"--n-outputs", "4",
		"--print-every-ms", "1",
		"--io-dir", tmp,
		"--seed", "7",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("brain command failed: %v", err)
	}

	for _, name := range []string{"spikes.jsonl", "log.jsonl", "stats.jsonl"} {
		if _, err := os.Stat(filepath.Join(tmp, name)); err != nil {
			t.Errorf("expected %s to be created: %v", name, err)
		}
	}

	b, err := os.ReadFile(filepath.Join(tmp, "spikes.jsonl"))
	if err != nil {
		t.Fatalf("read spikes.jsonl: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("expected spikes.jsonl to contain at least one record")
	}
}
