// Package storage provides the blob-storage provider used for member
// document uploads.
package storage

import "context"

// BlobStore stores an opaque byte payload under a caller-chosen key and
// returns the public URL of the stored object. Storing the same key
// twice overwrites the previous object.
type BlobStore interface {
	Store(ctx context.Context, key string, data []byte) (string, error)
}
