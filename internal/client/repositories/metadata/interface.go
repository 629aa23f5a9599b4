// Package metadata stores small opaque records of the local client database
// under string keys. The persisted credential lives here.
package metadata

import (
	"context"
	"time"
)

// Record is a stored value together with the time it was last written.
type Record struct {
	Value     []byte
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) (*Record, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]*Record, error)
}
