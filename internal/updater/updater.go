// Package updater runs the yt-dlp self-update at startup. Outcomes are
// informational only: every failure path logs and returns, nothing is
// surfaced to the user as an error.
package updater

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// Timeout bounds the whole self-update run. On expiry the child process is
// killed rather than left running detached.
const Timeout = 30 * time.Second

// Run invokes `yt-dlp -U` at binPath, waiting at most Timeout. Output is
// discarded; only the exit status is inspected. Safe to call from a
// background goroutine — it shares no mutable state with the caller.
func Run(ctx context.Context, binPath string, log *slog.Logger) {
	run(ctx, binPath, Timeout, log)
}

func run(ctx context.Context, binPath string, timeout time.Duration, log *slog.Logger) {
	if _, err := os.Stat(binPath); err != nil {
		log.Warn("yt-dlp not found, skipping update", "path", binPath)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info("updating yt-dlp", "path", binPath)
	err := exec.CommandContext(ctx, binPath, "-U").Run()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		log.Warn("yt-dlp update timed out")
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warn("yt-dlp update failed", "code", exitErr.ExitCode())
		} else {
			log.Warn("yt-dlp update failed", "error", err)
		}
	default:
		log.Info("yt-dlp updated successfully")
	}
}
