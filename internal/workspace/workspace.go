// Package workspace manages short-lived working directories for media
// pipelines. Each acquired workspace is an isolated directory under a
// common root that the caller releases when done, either immediately
// or after a delay.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrExhausted is returned when a fresh directory name could not be
// claimed after repeated collisions.
var ErrExhausted = errors.New("workspace: could not allocate a unique directory")

const maxAcquireAttempts = 16

// Manager allocates workspaces under a fixed root directory.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager creates the root directory if needed and returns a
// Manager allocating beneath it.
func NewManager(root string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: creating root %s: %w", root, err)
	}
	return &Manager{root: root, logger: logger}, nil
}

// Acquire claims a new empty directory under the root. Names carry a
// random integer suffix; Mkdir's create-exclusive semantics detect
// collisions, which are retried with a fresh suffix.
func (m *Manager) Acquire() (*Workspace, error) {
	for range maxAcquireAttempts {
		suffix := rand.Int64N(1_000_000) + 1
		dir := filepath.Join(m.root, "ws_"+strconv.FormatInt(suffix, 10))
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			m.logger.Debug("workspace acquired", slog.String("dir", dir))
			return &Workspace{dir: dir, logger: m.logger}, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return nil, fmt.Errorf("workspace: creating %s: %w", dir, err)
	}
	return nil, ErrExhausted
}

// Workspace is a private working directory. It is not safe to use
// after Release.
type Workspace struct {
	dir    string
	logger *slog.Logger
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Release removes the workspace directory and everything in it.
func (w *Workspace) Release() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("workspace: releasing %s: %w", w.dir, err)
	}
	return nil
}

// ReleaseAfter schedules removal of the workspace once d has elapsed.
// Useful when the workspace contents are handed to a consumer that
// reads them asynchronously. Failures are logged, not returned.
func (w *Workspace) ReleaseAfter(d time.Duration) {
	time.AfterFunc(d, func() {
		if err := w.Release(); err != nil {
			w.logger.Warn("deferred workspace release failed",
				slog.String("dir", w.dir),
				slog.String("error", err.Error()),
			)
		}
	})
}
