// Package logging sets up the per-run application log: a timestamped file
// in the configured log directory, optionally teed into an in-memory tail
// for on-screen display.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Tail retains the most recent log lines. Safe for concurrent writers —
// the updater goroutine and the UI loop log through the same sink.
type Tail struct {
	mu    sync.Mutex
	max   int
	lines []string
}

// NewTail returns a tail keeping at most max lines.
func NewTail(max int) *Tail {
	return &Tail{max: max}
}

// Write splits p into lines and appends them, dropping the oldest past the
// cap. Always reports full success so a log write never fails on its
// account.
func (t *Tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		t.lines = append(t.lines, line)
	}
	if over := len(t.lines) - t.max; over > 0 {
		t.lines = t.lines[over:]
	}
	return len(p), nil
}

// Lines returns a copy of the retained lines, oldest first.
func (t *Tail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Open creates a timestamped log file under dir and returns a logger
// writing to it. When tail is non-nil, records are teed into it as well.
// The returned closer owns the file handle.
func Open(dir string, tail *Tail) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}

	name := fmt.Sprintf("ytplay_%s.log", time.Now().Format("20060102_150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("creating log file: %w", err)
	}

	var w io.Writer = f
	if tail != nil {
		w = io.MultiWriter(f, tail)
	}
	return slog.New(slog.NewTextHandler(w, nil)), f, nil
}

// Discard returns a logger that drops everything, for when the log
// directory cannot be opened.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
