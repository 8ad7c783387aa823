package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesClear_ConfirmationMismatchAborts(t *testing.T) {
	cmd := &FavoritesClearCommand{globals: &GlobalFlags{}, in: strings.NewReader("yes\n")}

	var err error
	output := captureOutput(t, func() {
		err = cmd.Execute(nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation text did not match")
	assert.Contains(t, output, "WARNING")
}

func TestFavoritesClear_NoInputAborts(t *testing.T) {
	cmd := &FavoritesClearCommand{globals: &GlobalFlags{}, in: strings.NewReader("")}

	var err error
	captureOutput(t, func() {
		err = cmd.confirm()
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input received")
}

func TestFavoritesClear_ConfirmationAccepted(t *testing.T) {
	cmd := &FavoritesClearCommand{globals: &GlobalFlags{}, in: strings.NewReader("  CLEAR \n")}

	captureOutput(t, func() {
		assert.NoError(t, cmd.confirm())
	})
}

func TestFavoritesClear_RemovesEverything(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		_, err := a.favorites.Add(ctx, id)
		require.NoError(t, err)
	}

	cmd := &FavoritesClearCommand{Force: true, globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a))
	})

	assert.Contains(t, output, "Cleared 3 favorites.")
	assert.Equal(t, 0, a.favorites.Count(ctx))

	_, err := a.kv.Get(ctx, a.favorites.Key())
	assert.Error(t, err)
}

func TestFavoritesClear_JSON(t *testing.T) {
	a := newTestApp(t, nil)
	_, err := a.favorites.Add(context.Background(), "1")
	require.NoError(t, err)

	cmd := &FavoritesClearCommand{Force: true, globals: &GlobalFlags{JSON: true}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.run(a))
	})

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, true, out["cleared"])
	assert.Equal(t, float64(1), out["removed"])
}
