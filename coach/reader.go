package coach

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// tailWindow bounds how far back from EOF Reader scans for the last
// complete line. A spike record is a few hundred bytes, so 8KiB holds
// the last couple of dozen records, not the whole 100-line journal.
const tailWindow = 8192

// Reader tails a JSONL file (spikes.jsonl in practice) and always returns
// the last complete line, reopening whenever the file shrinks or its mtime
// changes so that a concurrent rewrite by the brain's trim-to-100-lines
// policy never confuses it. It tolerates the file not existing yet.
type Reader struct {
	path string

	lastSize    int64
	lastModTime time.Time
	lastLine    string
}

// NewReader returns a Reader over path. The file need not exist yet.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadLatest returns the last complete line in the file and true if it is
// new since the previous call. It returns false, nil error when the file is
// missing, empty, or unchanged.
func (r *Reader) ReadLatest() (string, bool, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	if info.Size() < r.lastSize || info.ModTime() != r.lastModTime {
		r.lastLine = ""
	}
	r.lastSize = info.Size()
	r.lastModTime = info.ModTime()

	f, err := os.Open(r.path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	start := info.Size() - tailWindow
	if start < 0 {
		start = 0
	}
	if _, err := f.Seek(start, 0); err != nil {
		return "", false, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", false, err
	}
	if start > 0 {
		// The window may begin mid-line; drop that leading fragment.
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			data = data[i+1:]
		} else {
			data = nil
		}
	}
	// Only newline-terminated lines are complete.
	end := bytes.LastIndexByte(data, '\n')
	last := ""
	if end >= 0 {
		for _, l := range strings.Split(string(data[:end]), "\n") {
			if line := strings.TrimSpace(l); line != "" {
				last = line
			}
		}
	}

	if last == "" || last == r.lastLine {
		return "", false, nil
	}
	r.lastLine = last
	return last, true, nil
}

// LatestHormones reads the last spike record and returns its hormone
// snapshot as float64s, parsing the two-decimal strings the spike log
// writes. It returns false if no spike record is available yet.
func (r *Reader) LatestHormones() (map[string]float64, bool, error) {
	line, changed, err := r.ReadLatest()
	if err != nil || !changed {
		return nil, false, err
	}

	var rec struct {
		Type     string            `json:"type"`
		Hormones map[string]string `json:"hormones"`
	}
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, false, nil
	}
	if rec.Type != "spike" || rec.Hormones == nil {
		return nil, false, nil
	}

	out := make(map[string]float64, len(rec.Hormones))
	for name, s := range rec.Hormones {
		v, parseErr := strconv.ParseFloat(s, 64)
		if parseErr != nil {
			continue
		}
		out[name] = v
	}
	return out, true, nil
}
