package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/mini-colony/internal/engine"
)

// TraceEntry is one line of the per-tick trace.
type TraceEntry struct {
	RunID  string        `json:"run_id"`
	Tick   uint64        `json:"tick"`
	Census engine.Census `json:"census"`
}

// TraceWriter writes zstd-compressed JSONL, one entry per line.
type TraceWriter struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTraceWriter creates <dir>/<runID>.jsonl.zst.
func NewTraceWriter(dir, runID string) (*TraceWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("trace dir: %w", err)
	}
	path := filepath.Join(dir, runID+".jsonl.zst")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace encoder: %w", err)
	}
	return &TraceWriter{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

// Path returns the trace file location.
func (t *TraceWriter) Path() string { return t.path }

// Write appends one entry.
func (t *TraceWriter) Write(e TraceEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.w == nil {
		return os.ErrClosed
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes buffered lines and finishes the zstd frame.
func (t *TraceWriter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var err1 error
	if t.w != nil {
		err1 = t.w.Flush()
	}
	if t.enc != nil {
		if err := t.enc.Close(); err1 == nil {
			err1 = err
		}
		t.enc = nil
	}
	if t.f != nil {
		if err := t.f.Close(); err1 == nil {
			err1 = err
		}
		t.f = nil
	}
	t.w = nil
	return err1
}

// ReadTrace decodes every entry of a trace file.
func ReadTrace(path string) ([]TraceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []TraceEntry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var e TraceEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("decode trace line: %w", err)
		}
		out = append(out, e)
	}
	return out, sc.Err()
}
