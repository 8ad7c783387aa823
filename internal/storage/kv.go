// Package storage provides the local key/value media that hold homehub's
// persisted state: SQLite (default), a single JSON file, or memory.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is a textual get/set-by-key medium.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// UpdateFunc receives the current value of a key (found is false when the
// key is absent) and returns the value to store. Returning an error aborts
// the update without writing.
type UpdateFunc func(current string, found bool) (next string, err error)

// Updater is implemented by media that can run a read-modify-write cycle
// atomically, including against other processes sharing the medium.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Stats describes the contents of a medium.
type Stats struct {
	Backend      string
	Location     string
	Keys         int64
	Bytes        int64
	AuditEntries int64
	LastWrite    time.Time
}

// Inspector is implemented by media that can report Stats.
type Inspector interface {
	Stats(ctx context.Context) (*Stats, error)
}
