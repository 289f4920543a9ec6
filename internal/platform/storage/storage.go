package storage

import (
	"context"
	"io"
)

// ObjectStore holds uploaded binary artifacts (ID documents, candidate
// photos). The core only keeps the returned key string; serving the bytes back
// to browsers is outside the election core.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
