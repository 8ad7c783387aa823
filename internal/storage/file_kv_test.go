package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/homehub/internal/logger"
)

func newTestFileKV(t *testing.T) *FileKV {
	t.Helper()
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "nested", "favorites.json"))
	require.NoError(t, err)
	return kv
}

func TestFileKV_GetMissingFile(t *testing.T) {
	kv := newTestFileKV(t)

	_, err := kv.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileKV_SetGetDelete(t *testing.T) {
	kv := newTestFileKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "a", "1"))
	require.NoError(t, kv.Set(ctx, "b", "2"))

	got, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	got, err = kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestFileKV_WritesJSONObject(t *testing.T) {
	kv := newTestFileKV(t)
	require.NoError(t, kv.Set(context.Background(), "homehub_favorites", "[]"))

	data, err := os.ReadFile(kv.path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"homehub_favorites":"[]"}`, string(data))

	_, err = os.Stat(kv.path + ".lock")
	assert.NoError(t, err, "lock sidecar should exist")
}

func TestFileKV_CorruptFileFailsReads(t *testing.T) {
	kv := newTestFileKV(t)
	require.NoError(t, os.WriteFile(kv.path, []byte("not json"), 0o644))

	_, err := kv.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCorruptFile)

	_, err = kv.Stats(context.Background())
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestFileKV_WriteSetsCorruptFileAside(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogAdapter(logger.SlogConfig{Writer: &buf})
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "favorites.json"), WithFileLogger(log))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(kv.path, []byte("not json"), 0o644))

	require.NoError(t, kv.Set(ctx, "k", "v"))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	old, err := os.ReadFile(kv.CorruptPath())
	require.NoError(t, err)
	assert.Equal(t, "not json", string(old))
	assert.Contains(t, buf.String(), "moved aside")
}

func TestFileKV_DeleteAndUpdateRecoverFromCorruptFile(t *testing.T) {
	ctx := context.Background()

	t.Run("delete", func(t *testing.T) {
		kv := newTestFileKV(t)
		require.NoError(t, os.WriteFile(kv.path, []byte("{"), 0o644))

		require.NoError(t, kv.Delete(ctx, "k"))
		_, err := kv.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("update", func(t *testing.T) {
		kv := newTestFileKV(t)
		require.NoError(t, os.WriteFile(kv.path, []byte("[1,2]"), 0o644))

		err := kv.Update(ctx, "k", func(cur string, found bool) (string, error) {
			assert.False(t, found)
			assert.Empty(t, cur)
			return "fresh", nil
		})
		require.NoError(t, err)

		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "fresh", got)
	})
}

func TestFileKV_EmptyFileIsEmptyObject(t *testing.T) {
	kv := newTestFileKV(t)
	require.NoError(t, os.WriteFile(kv.path, nil, 0o644))

	_, err := kv.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileKV_UpdateSerializesWriters(t *testing.T) {
	kv := newTestFileKV(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := kv.Update(ctx, "counter", func(cur string, _ bool) (string, error) {
				return cur + "x", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestFileKV_TwoHandlesShareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	a, err := NewFileKV(path)
	require.NoError(t, err)
	b, err := NewFileKV(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", "from-a"))
	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "from-a", got)
}

func TestFileKV_Stats(t *testing.T) {
	kv := newTestFileKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "k", "abcd"))

	stats, err := kv.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file", stats.Backend)
	assert.Equal(t, int64(1), stats.Keys)
	assert.Equal(t, int64(4), stats.Bytes)
	assert.False(t, stats.LastWrite.IsZero())
}

func TestFileKV_CanceledContext(t *testing.T) {
	kv := newTestFileKV(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, kv.Set(ctx, "k", "v"), context.Canceled)
}
