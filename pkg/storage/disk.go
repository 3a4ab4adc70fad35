// Package storage provides the blob store behind product image uploads.
//
// Two drivers are available:
//   - "local" — local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces),
//     enabled when S3_BUCKET is configured
//
// Uploads go to S3 when it is configured and reachable, falling back to the
// local disk otherwise. URL() returns a public URL in either case.
package storage

import (
	"io"
)

// Disk is the blob store driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// Delete removes a file. Removing a missing file is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
