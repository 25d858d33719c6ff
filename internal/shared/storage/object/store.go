package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the contract for saving and retrieving binary objects
// at caller-chosen keys. Document state lives entirely under these keys
// (uploads/, extracted/, parsed/, structured/, tailored/, draft/, exports/).
type ObjectStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// Presigner is implemented by stores that can mint time-limited download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, storageKey string, expires time.Duration) (string, error)
}
