// Package storage abstracts where meme templates are fetched from and
// where rendered artifacts are persisted. Implementations exist for
// local disk and S3-compatible object stores.
package storage

import "context"

// Store fetches source templates and persists rendered artifacts.
type Store interface {
	// FetchTemplate returns the raw bytes of the template identified
	// by ref. For local stores ref is a file name under the store
	// directory; for object stores it is an object key.
	FetchTemplate(ctx context.Context, ref string) ([]byte, error)

	// PersistArtifact stores a rendered artifact and returns a
	// reference that FetchTemplate on the same store would accept.
	// The MIME type determines the stored file's extension.
	PersistArtifact(ctx context.Context, data []byte, mimeType string) (ref string, err error)
}
