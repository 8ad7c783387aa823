package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/runnerr0/homehub/internal/logger"
)

// ErrCorruptFile is returned when the backing file is not a JSON object of
// string values.
var ErrCorruptFile = errors.New("corrupt key/value file")

// FileKV keeps every key in one JSON object file. Writes replace the file
// atomically and every read-modify-write holds an flock on a sidecar, so
// several homehub processes can share the file.
type FileKV struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
}

// FileOption configures a FileKV.
type FileOption func(*FileKV)

// WithFileLogger sets the logger used when a corrupt file is set aside.
func WithFileLogger(l logger.Logger) FileOption {
	return func(f *FileKV) { f.log = l }
}

// NewFileKV returns a FileKV at path, creating the parent directory.
func NewFileKV(path string, opts ...FileOption) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}
	f := &FileKV{path: path, log: logger.Nop{}}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// CorruptPath is where an unreadable file is moved before the next write.
func (f *FileKV) CorruptPath() string { return f.path + ".corrupt" }

// withLock runs fn holding both the in-process mutex and the file lock.
func (f *FileKV) withLock(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	lock, err := acquireLock(f.path, LockTimeout)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer lock.release()

	return fn()
}

func (f *FileKV) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptFile, f.path, err)
	}
	return values, nil
}

// loadForWrite is load for mutations. A corrupt file is renamed to
// CorruptPath and the write continues from an empty object, so a bad file
// never blocks recovery.
func (f *FileKV) loadForWrite() (map[string]string, error) {
	values, err := f.load()
	if !errors.Is(err, ErrCorruptFile) {
		return values, err
	}
	if rerr := os.Rename(f.path, f.CorruptPath()); rerr != nil {
		return nil, fmt.Errorf("set aside %s: %w", f.path, rerr)
	}
	f.log.Warn("Key/value file is corrupt, moved aside and starting empty", logger.Fields{
		"path":     f.path,
		"moved_to": f.CorruptPath(),
		"error":    err.Error(),
	})
	return map[string]string{}, nil
}

func (f *FileKV) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

func (f *FileKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := f.withLock(ctx, func() error {
		values, err := f.load()
		if err != nil {
			return err
		}
		v, ok := values[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		value = v
		return nil
	})
	return value, err
}

func (f *FileKV) Set(ctx context.Context, key, value string) error {
	return f.withLock(ctx, func() error {
		values, err := f.loadForWrite()
		if err != nil {
			return err
		}
		values[key] = value
		return f.save(values)
	})
}

func (f *FileKV) Delete(ctx context.Context, key string) error {
	return f.withLock(ctx, func() error {
		values, err := f.loadForWrite()
		if err != nil {
			return err
		}
		if _, ok := values[key]; !ok {
			return nil
		}
		delete(values, key)
		return f.save(values)
	})
}

// Update runs fn under the file lock and writes its result.
func (f *FileKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return f.withLock(ctx, func() error {
		values, err := f.loadForWrite()
		if err != nil {
			return err
		}
		current, found := values[key]
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		values[key] = next
		return f.save(values)
	})
}

// Stats reports the keys held in the file.
func (f *FileKV) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Backend: "file", Location: f.path}
	err := f.withLock(ctx, func() error {
		values, err := f.load()
		if err != nil {
			return err
		}
		stats.Keys = int64(len(values))
		for _, v := range values {
			stats.Bytes += int64(len(v))
		}
		if info, err := os.Stat(f.path); err == nil {
			stats.LastWrite = info.ModTime().UTC()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Close is a no-op; FileKV holds no open handles between calls.
func (f *FileKV) Close() error { return nil }
