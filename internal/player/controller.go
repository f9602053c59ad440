// Package player manages the lifecycle of a single external mpv process.
// mpv is invoked with an explicit argument slice — no shell interpretation —
// and is tracked only through its process handle.
package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"
)

// Status describes the controller's view of the playback session.
type Status int

const (
	// StatusIdle means no process is tracked.
	StatusIdle Status = iota
	// StatusRunning means the tracked process is still alive.
	StatusRunning
	// StatusCompleted is reported once when the tracked process is found
	// to have exited on its own; subsequent polls return StatusIdle.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Options selects playback flags for the spawned player.
type Options struct {
	Fullscreen bool
	Loop       bool
}

// Controller starts, polls, and terminates at most one player process at a
// time. It is owned by a single goroutine; methods are not safe for
// concurrent use.
type Controller struct {
	binPath string
	log     *slog.Logger
	grace   time.Duration

	cmd  *exec.Cmd
	done chan error
}

// New returns a controller that launches the player at binPath.
func New(binPath string, log *slog.Logger) *Controller {
	return &Controller{
		binPath: binPath,
		log:     log,
		grace:   2 * time.Second,
	}
}

// Play tears down any tracked process, then spawns the player on url with
// the selected flags. A spawn failure is returned to the caller; the
// controller stays Idle in that case.
func (c *Controller) Play(url string, opts Options) error {
	c.Stop()

	args := make([]string, 0, 4)
	if opts.Fullscreen {
		args = append(args, "--fullscreen")
	}
	if opts.Loop {
		args = append(args, "--loop-file=inf")
	}
	args = append(args, "--really-quiet", url)

	cmd := exec.Command(c.binPath, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", filepath.Base(c.binPath), err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	c.cmd = cmd
	c.done = done
	c.log.Info("playback started", "url", url, "pid", cmd.Process.Pid)
	return nil
}

// Stop requests graceful termination of the tracked process, waiting up to
// the grace window before force-killing. Termination failures are logged,
// never returned; the handle is cleared regardless of outcome.
func (c *Controller) Stop() {
	if c.cmd == nil {
		return
	}

	c.log.Info("stopping playback", "pid", c.cmd.Process.Pid)
	if err := c.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		c.log.Warn("terminating player", "error", err)
	}

	select {
	case <-c.done:
	case <-time.After(c.grace):
		if err := c.cmd.Process.Kill(); err != nil {
			c.log.Warn("killing player", "error", err)
		}
		<-c.done
	}

	c.cmd = nil
	c.done = nil
}

// Poll checks without blocking whether the tracked process has exited on
// its own. This is the only path that detects natural playback completion.
func (c *Controller) Poll() Status {
	if c.cmd == nil {
		return StatusIdle
	}
	select {
	case <-c.done:
		c.log.Info("playback completed", "pid", c.cmd.Process.Pid)
		c.cmd = nil
		c.done = nil
		return StatusCompleted
	default:
		return StatusRunning
	}
}

// Running reports whether a process is currently tracked.
func (c *Controller) Running() bool { return c.cmd != nil }

// Wait blocks until the tracked process exits and clears the handle.
// mpv exits non-zero on user quit, so callers should tolerate
// *exec.ExitError. Returns nil when nothing is tracked.
func (c *Controller) Wait() error {
	if c.cmd == nil {
		return nil
	}
	err := <-c.done
	c.cmd = nil
	c.done = nil
	return err
}
