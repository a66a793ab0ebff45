package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/memeforge/engine/internal/mediatype"
)

// LocalStore keeps templates and artifacts as files under a single
// directory. Artifact references are generated file names, so a
// LocalStore can serve as both source and sink for a pipeline.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the backing directory if needed. An empty dir
// defaults to a subdirectory of the system temp directory.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "memeforge")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: creating directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the backing directory path.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) FetchTemplate(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	// #nosec G304 - refs are issued by this store or operator configuration.
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil {
		return nil, fmt.Errorf("storage: reading template %s: %w", ref, err)
	}
	return data, nil
}

func (s *LocalStore) PersistArtifact(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	ref := uuid.NewString() + "." + mediatype.FileExtension(mimeType)
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: writing artifact %s: %w", ref, err)
	}
	return ref, nil
}
