package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/logger"
)

// Open returns the medium selected by cfg.Backend, creating the storage
// directory for the on-disk backends. log receives medium warnings.
func Open(cfg config.StorageConfig, log logger.Logger) (KeyValue, error) {
	if cfg.Backend == config.BackendMemory {
		return NewMemoryKV(), nil
	}

	dir, err := cfg.ResolvedPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	switch cfg.Backend {
	case config.BackendSQLite:
		kv, err := OpenSQLite(filepath.Join(dir, cfg.SQLiteFile))
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.BackendFile:
		kv, err := NewFileKV(filepath.Join(dir, cfg.FavoritesFile), WithFileLogger(log))
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
