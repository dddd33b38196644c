// Package journal implements the three append-only JSONL files that the
// brain simulator uses to talk to the outside world: an input command
// stream read by byte-offset tailing, and two output streams (spikes,
// status/error/hormone) that are flushed, fsynced, and trimmed to their
// last 100 lines after every write. A fourth file, stats, is a
// human-readable ASCII grid overwritten on every logged tick.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const maxLines = 100

// Command is one parsed line from commands.jsonl. Data holds either the
// nested "data" object or, if absent, the top-level object itself, so
// writers may use either shape.
type Command struct {
	Cmd  string
	Data map[string]any
}

// Journal owns the four JSONL/text files under an I/O directory and
// serializes every write behind a single mutex, held through the full
// append+flush+fsync+trim sequence.
type Journal struct {
	mu sync.Mutex

	dir string

	commandsPath string
	spikesPath   string
	logPath      string
	statsPath    string

	spikesFile *os.File
	logFile    *os.File

	lastCommandOffset int64
}

// Open creates dir if needed, truncates the three output files, opens them
// for appending, and resets the command read frontier to zero.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: create dir %s: %w", dir, err)
	}

	j := &Journal{
		dir:          dir,
		commandsPath: filepath.Join(dir, "commands.jsonl"),
		spikesPath:   filepath.Join(dir, "spikes.jsonl"),
		logPath:      filepath.Join(dir, "log.jsonl"),
		statsPath:    filepath.Join(dir, "stats.jsonl"),
	}

	for _, p := range []string{j.spikesPath, j.logPath, j.statsPath} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			return nil, fmt.Errorf("journal: truncate %s: %w", p, err)
		}
	}

	spikesFile, err := os.OpenFile(j.spikesPath, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", j.spikesPath, err)
	}
	logFile, err := os.OpenFile(j.logPath, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		spikesFile.Close()
		return nil, fmt.Errorf("journal: open %s: %w", j.logPath, err)
	}

	j.spikesFile = spikesFile
	j.logFile = logFile
	return j, nil
}

// Close releases the open output file handles.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var errs []error
	if err := j.spikesFile.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := j.logFile.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("journal: close errors: %v", errs)
	}
	return nil
}

// ReadNewCommands reads whole lines appended to commands.jsonl since the
// last call, leaving any partial trailing line for the next call. Malformed
// JSON lines are reported in malformed (caller logs them as error records)
// rather than returned as a hard failure, so one bad line never stalls the
// rest of the batch.
func (j *Journal) ReadNewCommands() (cmds []Command, malformed []string, err error) {
	info, statErr := os.Stat(j.commandsPath)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, nil, nil
		}
		return nil, nil, statErr
	}
	if info.Size() <= j.lastCommandOffset {
		return nil, nil, nil
	}

	f, err := os.Open(j.commandsPath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if _, err := f.Seek(j.lastCommandOffset, 0); err != nil {
		return nil, nil, err
	}

	reader := bufio.NewReader(f)
	offset := j.lastCommandOffset
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 && strings.HasSuffix(line, "\n") {
			offset += int64(len(line))
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				cmd, parseErr := parseCommand(trimmed)
				if parseErr != nil {
					malformed = append(malformed, parseErr.Error())
				} else {
					cmds = append(cmds, cmd)
				}
			}
		} else {
			// Partial trailing line (or EOF with nothing more): leave it
			// for the next call by not advancing past its start.
			break
		}
		if readErr != nil {
			break
		}
	}

	j.lastCommandOffset = offset
	return cmds, malformed, nil
}

func parseCommand(line string) (Command, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Command{}, fmt.Errorf("command parse error: %w", err)
	}

	cmdName, _ := raw["cmd"].(string)

	data := raw
	if nested, ok := raw["data"].(map[string]any); ok {
		data = nested
	}

	return Command{Cmd: cmdName, Data: data}, nil
}

func nowISOUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// LogSpike appends one spike record: the logged tick number, active spike
// count, and the full hormone snapshot formatted as two-decimal strings.
func (j *Journal) LogSpike(timestep int64, spikeCount int, hormones map[string]float64, names []string) error {
	rec := map[string]any{
		"ts":       nowISOUTC(),
		"type":     "spike",
		"timestep": timestep,
		"spikes":   spikeCount,
	}
	formatted := make(map[string]string, len(names))
	for _, name := range names {
		formatted[name] = fmt.Sprintf("%.2f", hormones[name])
	}
	rec["hormones"] = formatted

	return j.appendTrimmed(j.spikesFile, j.spikesPath, rec)
}

// LogStatus appends a status record to log.jsonl.
func (j *Journal) LogStatus(message string) error {
	return j.appendTrimmed(j.logFile, j.logPath, map[string]any{
		"ts": nowISOUTC(), "type": "status", "message": message,
	})
}

// LogError appends an error record to log.jsonl.
func (j *Journal) LogError(message string) error {
	return j.appendTrimmed(j.logFile, j.logPath, map[string]any{
		"ts": nowISOUTC(), "type": "error", "message": message,
	})
}

// LogHormone appends a single named hormone reading to log.jsonl.
func (j *Journal) LogHormone(name string, level float64) error {
	return j.appendTrimmed(j.logFile, j.logPath, map[string]any{
		"ts": nowISOUTC(), "type": "hormone", "name": name, "level": level,
	})
}

func (j *Journal) appendTrimmed(f *os.File, path string, rec map[string]any) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return trimToLastLines(path, maxLines)
}

// trimToLastLines rewrites path to contain only its last maxLines lines.
// The file is bounded in size, so a read-then-rewrite is cheap and avoids
// unbounded growth of the journal between coach polls.
func trimToLastLines(path string, max int) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	out := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(out), 0o644)
}

// LogStatsGrid overwrites stats.jsonl with a human-readable ASCII rendering
// of the current spike vector: input spikes as ▲, output spikes as ■,
// hidden spikes as ×, silence as ·, with layer boundaries marked.
func (j *Journal) LogStatsGrid(spikes []int, timestep int64, nInputs, nOutputs int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	total := len(spikes)
	if total == 0 {
		return nil
	}
	side := 1
	for side*side < total {
		side++
	}

	inputEnd := nInputs
	outputStart := total - nOutputs

	var sb strings.Builder
	fmt.Fprintf(&sb, "Timestep %d  (N=%d, Grid=%d×%d)\n", timestep, total, side, side)

	for r := 0; r < side; r++ {
		var line strings.Builder
		for c := 0; c < side; c++ {
			i := r*side + c
			if i >= total {
				break
			}
			if i == inputEnd || i == outputStart {
				line.WriteString(" | ")
			}
			switch {
			case i < inputEnd:
				line.WriteString(spikeGlyph(spikes[i], "▲"))
			case i >= outputStart:
				line.WriteString(spikeGlyph(spikes[i], "■"))
			default:
				line.WriteString(spikeGlyph(spikes[i], "×"))
			}
			if c < side-1 {
				line.WriteString("  ")
			}
		}
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}

	return os.WriteFile(j.statsPath, []byte(sb.String()), 0o644)
}

func spikeGlyph(spike int, active string) string {
	if spike != 0 {
		return active
	}
	return "·"
}
