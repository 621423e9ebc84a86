package endpoints

import (
	"context"
	"io"
)

// Source reads an endpoints file from wherever it is provisioned.
type Source interface {
	// Get returns a ReadCloser for the object stored under key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
