package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist` so a
// plain filesystem miss already qualifies.
var ErrNotFound = os.ErrNotExist

// BlobStore is a read-only abstraction for accessing immutable data blobs
// (shard files). The lookup path never writes through it.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// List returns the names of all blobs with the given name prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// Mappable is an optional interface for Blobs that expose their contents as
// a byte slice without copying. The slice is valid until the Blob is closed.
type Mappable interface {
	Bytes() ([]byte, error)
}

// BulkReader is an optional interface for Blobs that can fetch their whole
// contents in one optimized operation, e.g. parallel ranged downloads. The
// returned slice is owned by the caller.
type BulkReader interface {
	ReadAll(ctx context.Context) ([]byte, error)
}

// ReadAll reads the full contents of a blob. Mappable blobs are read
// zero-copy; the returned slice must then be treated as read-only and not
// used after Close. BulkReader blobs fetch in one optimized operation.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		return m.Bytes()
	}
	if br, ok := b.(BulkReader); ok {
		return br.ReadAll(ctx)
	}
	buf := make([]byte, b.Size())
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
