package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryKV is a process-local KeyValue. Its contents die with the process.
type MemoryKV struct {
	mu        sync.RWMutex
	values    map[string]string
	lastWrite time.Time
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return v, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	m.lastWrite = time.Now().UTC()
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	m.lastWrite = time.Now().UTC()
	return nil
}

func (m *MemoryKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := m.values[key]
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	m.values[key] = next
	m.lastWrite = time.Now().UTC()
	return nil
}

func (m *MemoryKV) Stats(ctx context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{Backend: "memory", Keys: int64(len(m.values)), LastWrite: m.lastWrite}
	for _, v := range m.values {
		stats.Bytes += int64(len(v))
	}
	return stats, nil
}

func (m *MemoryKV) Close() error { return nil }
