package coach

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// CommandWriter appends coach-originated commands to the brain's
// commands.jsonl. It is the coach-side half of the command journal: the
// brain only ever reads that file by tailing byte offsets (journal.Journal),
// so writing it is a plain append under its own mutex rather than sharing
// the brain's Journal type.
type CommandWriter struct {
	mu   sync.Mutex
	path string
}

// NewCommandWriter returns a writer targeting commandsPath, creating the
// file if it does not already exist so the brain's tailer has something to
// open.
func NewCommandWriter(commandsPath string) (*CommandWriter, error) {
	f, err := os.OpenFile(commandsPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("coach: open %s: %w", commandsPath, err)
	}
	f.Close()
	return &CommandWriter{path: commandsPath}, nil
}

func (w *CommandWriter) append(cmd string, data map[string]any, seq int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec := map[string]any{
		"ts":     float64(time.Now().UnixNano()) / 1e9,
		"seq":    seq,
		"source": "coach",
		"cmd":    cmd,
		"data":   data,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("coach: append %s: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// clampDrive bounds the coach's suggestion to [-1, 1]. A negative value is
// written as is; the brain's own [0, 2] clamp floors it to 0 on ingest.
func clampDrive(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// WriteSetHormones appends a set_hormones command with the three drives the
// brain understands. Negative values are legal on the wire; the brain's own
// SetXDrive clamp floors them to 0.
func (w *CommandWriter) WriteSetHormones(dopamine, cortisol, adrenaline float64, seq int) error {
	data := map[string]any{
		"dopamine":   clampDrive(dopamine),
		"cortisol":   clampDrive(cortisol),
		"adrenaline": clampDrive(adrenaline),
	}
	return w.append("set_hormones", data, seq)
}

// WriteInputPattern appends an input_pattern command carrying pat verbatim.
func (w *CommandWriter) WriteInputPattern(pat []int, seq int) error {
	return w.append("input_pattern", map[string]any{"pattern": pat}, seq)
}

// WriteExit appends an exit command requesting the brain shut down.
func (w *CommandWriter) WriteExit(seq int) error {
	return w.append("exit", map[string]any{}, seq)
}
