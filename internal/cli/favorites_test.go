package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/favorites"
	"github.com/runnerr0/homehub/internal/storage"
)

func TestFavoritesAdd(t *testing.T) {
	a := newTestApp(t, nil)
	cmd := &FavoritesAddCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a, []string{"2"}))
	})

	assert.Contains(t, output, "Saved Downtown Skyline Condo ($625,000) to favorites")
	assert.True(t, a.favorites.IsFavorite(context.Background(), "2"))
}

func TestFavoritesAdd_Duplicate(t *testing.T) {
	a := newTestApp(t, nil)
	cmd := &FavoritesAddCommand{ID: "2", globals: &GlobalFlags{}}

	captureOutput(t, func() {
		require.NoError(t, cmd.run(a, nil))
	})
	err := cmd.run(a, nil)
	assert.ErrorIs(t, err, favorites.ErrDuplicateFavorite)
	assert.Equal(t, 1, a.favorites.Count(context.Background()))
}

func TestFavoritesAdd_UnknownProperty(t *testing.T) {
	a := newTestApp(t, nil)
	cmd := &FavoritesAddCommand{ID: "nope", globals: &GlobalFlags{}}

	err := cmd.run(a, nil)
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
	assert.Equal(t, 0, a.favorites.Count(context.Background()))
}

func TestFavoritesAdd_MissingID(t *testing.T) {
	err := (&FavoritesAddCommand{globals: &GlobalFlags{}}).Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestFavoritesAdd_JSON(t *testing.T) {
	a := newTestApp(t, nil)
	cmd := &FavoritesAddCommand{ID: "5", globals: &GlobalFlags{JSON: true}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a, nil))
	})

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, "5", out["property_id"])
	assert.Equal(t, "2024-06-01T09:30:00Z", out["saved_date"])
	assert.Equal(t, float64(1), out["count"])
}

func TestFavoritesRemove(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	_, err := a.favorites.Add(ctx, "3")
	require.NoError(t, err)

	cmd := &FavoritesRemoveCommand{ID: "3", globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a, nil))
	})
	assert.Contains(t, output, "Removed 3 from favorites")
	assert.False(t, a.favorites.IsFavorite(ctx, "3"))

	err = cmd.run(a, nil)
	assert.ErrorIs(t, err, favorites.ErrFavoriteNotFound)
}

func TestFavoritesList(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	for _, id := range []string{"6", "gone", "1"} {
		_, err := a.favorites.Add(ctx, id)
		require.NoError(t, err)
	}

	cmd := &FavoritesListCommand{globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a))
	})

	assert.Contains(t, output, "2 saved properties")
	assert.Less(t, strings.Index(output, "Hill Country Ranch Retreat"), strings.Index(output, "Charming Craftsman Bungalow"))
	assert.NotContains(t, output, "gone")
}

func TestFavoritesList_Empty(t *testing.T) {
	a := newTestApp(t, nil)
	cmd := &FavoritesListCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a))
	})
	assert.Contains(t, output, "No saved properties yet.")
}

func TestFavoritesList_JSON(t *testing.T) {
	a := newTestApp(t, nil)
	_, err := a.favorites.Add(context.Background(), "8")
	require.NoError(t, err)

	cmd := &FavoritesListCommand{globals: &GlobalFlags{JSON: true}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a))
	})

	var out jsonFavoritesOutput
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "8", out.Favorites[0].PropertyID)
	assert.Equal(t, "Historic Heights Townhome", out.Favorites[0].Property.Title)
	assert.True(t, out.Favorites[0].Property.Favorite)
}

func TestFavorites_PersistAcrossAppsOnSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homehub.db")

	kv1, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	a1 := newTestApp(t, kv1)
	captureOutput(t, func() {
		require.NoError(t, (&FavoritesAddCommand{ID: "1", globals: &GlobalFlags{}}).run(a1, nil))
	})
	require.NoError(t, kv1.Close())

	kv2, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	a2 := newTestApp(t, kv2)
	assert.Equal(t, []string{"1"}, a2.favorites.ListIDs(context.Background()))
}
