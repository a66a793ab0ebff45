// Package transcode drives the external ffmpeg/ffprobe tools with
// bounded timeouts and surfaces their failures as typed errors.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single encoder invocation. Transcoding
// failures are typically deterministic, so a hung process indicates a
// malformed input rather than a transient condition.
const DefaultTimeout = 120 * time.Second

// Error carries the outcome of a failed tool invocation, including
// the stderr output for diagnostics.
type Error struct {
	Args    []string
	Stderr  string
	Err     error
	Timeout bool
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transcode: timed out: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
	}
	return fmt.Sprintf("transcode: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes ffmpeg and ffprobe as subprocesses. The zero paths
// default to lookup via PATH. A Runner holds no per-invocation state
// and is safe for concurrent use.
type Runner struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
	logger      *slog.Logger
}

// NewRunner creates a Runner. Empty binary paths default to "ffmpeg"
// and "ffprobe"; a non-positive timeout defaults to DefaultTimeout.
func NewRunner(ffmpegPath, ffprobePath string, timeout time.Duration, logger *slog.Logger) *Runner {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
		logger:      logger,
	}
}

// Run invokes ffmpeg with the given arguments and blocks until the
// process exits, the context is cancelled, or the timeout elapses.
// Failures are reported as *Error with the tool's stderr attached.
func (r *Runner) Run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// #nosec G204 - the binary path is operator configuration, and the
	// arguments are built by this package's callers, not end users.
	cmd := exec.CommandContext(ctx, r.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.logger.Debug("encoder started",
		slog.String("command", r.ffmpegPath+" "+strings.Join(args, " ")),
	)

	err := cmd.Run()
	if err != nil {
		return &Error{
			Args:    args,
			Stderr:  stderr.String(),
			Err:     err,
			Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded),
		}
	}
	return nil
}
