package coach

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Runner polls the brain's spike log, prompts a completion client with the
// live hormone reading, classifies the reply, and writes the resulting
// set_hormones command back, the coach side of the reinforcement loop.
type Runner struct {
	reader *Reader
	writer *CommandWriter
	client Client
	seq    int
	onPoll func(Decision)
}

// NewRunner wires a Runner against an I/O directory: it tails spikes.jsonl
// for hormone readings and appends commands to commands.jsonl.
func NewRunner(ioDir string, client Client, seqStart int) (*Runner, error) {
	writer, err := NewCommandWriter(filepath.Join(ioDir, "commands.jsonl"))
	if err != nil {
		return nil, err
	}
	return &Runner{
		reader: NewReader(filepath.Join(ioDir, "spikes.jsonl")),
		writer: writer,
		client: client,
		seq:    seqStart,
	}, nil
}

// OnPoll registers a callback invoked with every Decision PollOnce derives,
// used by the CLI to print progress.
func (r *Runner) OnPoll(fn func(Decision)) { r.onPoll = fn }

// PollOnce checks for a new hormone reading; if one arrived, it builds a
// prompt, completes it, classifies the reply, and writes the feedback
// command. It returns false when there was nothing new to act on.
func (r *Runner) PollOnce(ctx context.Context) (Decision, bool, error) {
	hormones, changed, err := r.reader.LatestHormones()
	if err != nil {
		return Decision{}, false, fmt.Errorf("coach: read hormones: %w", err)
	}
	if !changed {
		return Decision{}, false, nil
	}

	prompt := BuildPrompt(hormones)
	reply, err := r.client.Complete(ctx, prompt)
	if err != nil {
		return Decision{}, false, fmt.Errorf("coach: completion failed: %w", err)
	}

	decision := Classify(reply)
	seq := r.seq
	r.seq++
	if err := ApplyFeedback(r.writer, decision, seq); err != nil {
		return Decision{}, false, fmt.Errorf("coach: write feedback: %w", err)
	}

	if r.onPoll != nil {
		r.onPoll(decision)
	}
	return decision, true, nil
}

// Run polls every interval until ctx is cancelled. Poll failures are
// tolerated: the coach never propagates an error across the brain boundary,
// it simply retries on the next tick.
func (r *Runner) Run(ctx context.Context, interval time.Duration, onErr func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := r.PollOnce(ctx); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
