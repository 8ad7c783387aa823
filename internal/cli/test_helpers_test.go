package cli

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/favorites"
	"github.com/runnerr0/homehub/internal/logger"
	"github.com/runnerr0/homehub/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestApp returns an app over the embedded dataset and the given medium,
// or an in-memory medium when kv is nil.
func newTestApp(t *testing.T, kv storage.KeyValue) *app {
	t.Helper()

	props, err := catalog.Default()
	require.NoError(t, err)

	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	t.Cleanup(func() { kv.Close() })

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendMemory

	return &app{
		cfg:        cfg,
		configPath: "test.yaml",
		log:        logger.Nop{},
		catalog:    catalog.New(props),
		kv:         kv,
		favorites: favorites.New(kv, favorites.WithClock(func() time.Time {
			return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
		})),
	}
}
