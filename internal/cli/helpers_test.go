package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr redirects stderr during fn so the app logger writes into it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func writeFileBackendConfig(t *testing.T) (cfgPath, favPath string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "config.yaml")
	cfg := "storage:\n" +
		"  backend: file\n" +
		"  path: " + dir + "\n" +
		"  favorites_file: favorites.json\n" +
		"logging:\n" +
		"  level: debug\n" +
		"  json: true\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, filepath.Join(dir, "favorites.json")
}

func TestOpenApp_CorruptFavoritesFileRecovers(t *testing.T) {
	cfgPath, favPath := writeFileBackendConfig(t)
	require.NoError(t, os.WriteFile(favPath, []byte("not json"), 0o644))
	g := &GlobalFlags{Config: cfgPath}
	ctx := context.Background()

	logs := captureStderr(t, func() {
		a, err := openApp(g)
		require.NoError(t, err)
		defer a.Close()

		assert.Empty(t, a.favorites.List(ctx))
		_, err = a.favorites.Add(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, 1, a.favorites.Count(ctx))

		require.NoError(t, os.WriteFile(favPath, []byte("{"), 0o644))
		captureOutput(t, func() {
			require.NoError(t, (&FavoritesClearCommand{Force: true, globals: g}).run(a))
		})
		assert.Equal(t, 0, a.favorites.Count(ctx))
	})

	assert.Contains(t, logs, "moved aside")
	_, err := os.Stat(favPath + ".corrupt")
	assert.NoError(t, err)
}

func TestOpenApp_FavoritesLogLinesTagComponentOnce(t *testing.T) {
	cfgPath, _ := writeFileBackendConfig(t)
	g := &GlobalFlags{Config: cfgPath}

	logs := captureStderr(t, func() {
		a, err := openApp(g)
		require.NoError(t, err)
		defer a.Close()
		_, err = a.favorites.Add(context.Background(), "1")
		require.NoError(t, err)
	})

	var found bool
	scanner := bufio.NewScanner(strings.NewReader(logs))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"component":"favorites"`) {
			continue
		}
		found = true
		assert.Equal(t, 1, strings.Count(line, `"component"`), line)
	}
	assert.True(t, found, "expected favorites log lines in %q", logs)
}
