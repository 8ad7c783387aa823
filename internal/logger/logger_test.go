package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/homehub/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestSlogAdapter_JSONIncludesFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	log.WithFields(Fields{"component": "favorites"}).
		Error("write failed", errors.New("disk full"), Fields{"key": "homehub_favorites"})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "write failed", rec["msg"])
	assert.Equal(t, "favorites", rec["component"])
	assert.Equal(t, "homehub_favorites", rec["key"])
	assert.Equal(t, "disk full", rec["error"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	log.Debug("hidden", nil)
	log.Info("hidden", nil)
	assert.Empty(t, buf.String())

	log.Warn("shown", Fields{"n": 1})
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "n=1")
}

func TestSlogAdapter_TintWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(SlogConfig{Writer: &buf, UseColor: true})

	log.Info("catalog loaded", Fields{"count": 8})
	assert.Contains(t, buf.String(), "catalog loaded")
	assert.Contains(t, buf.String(), "count")
}

type fakePoster struct {
	tags    []string
	records []map[string]interface{}
	closed  bool
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.tags = append(f.tags, tag)
	f.records = append(f.records, map[string]interface{}(message.(Fields)))
	return nil
}

func (f *fakePoster) Close() error {
	f.closed = true
	return nil
}

func TestFluentAdapter_PostsTaggedRecords(t *testing.T) {
	poster := &fakePoster{}
	fl, err := NewFluentAdapter(poster, slog.LevelInfo)
	require.NoError(t, err)
	fl.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	child := fl.WithFields(Fields{"component": "api"})
	child.Debug("dropped", nil)
	child.Info("request", Fields{"status": 200})
	child.Error("boom", errors.New("bad"), nil)

	require.Equal(t, []string{"info", "error"}, poster.tags)
	assert.Equal(t, "request", poster.records[0]["message"])
	assert.Equal(t, "api", poster.records[0]["component"])
	assert.Equal(t, 200, poster.records[0]["status"])
	assert.Equal(t, "2024-01-02T03:04:05Z", poster.records[0]["timestamp"])
	assert.Equal(t, "bad", poster.records[1]["error"])

	// parent context is not polluted by the child
	assert.Empty(t, fl.fields)

	require.NoError(t, fl.Close())
	assert.True(t, poster.closed)
}

func TestNewFluentAdapter_NilClient(t *testing.T) {
	_, err := NewFluentAdapter(nil, nil)
	assert.Error(t, err)
}

func TestNewFluentClient_RequiresTagPrefix(t *testing.T) {
	_, err := NewFluentClient(FluentConfig{Host: "127.0.0.1", Port: 24224})
	assert.Error(t, err)
}

func TestMulti_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	la := NewSlogAdapter(SlogConfig{Writer: &a})
	lb := NewSlogAdapter(SlogConfig{Writer: &b})

	m, err := NewMulti(la, lb)
	require.NoError(t, err)
	m.WithFields(Fields{"trace_id": "abc"}).Info("hello", nil)

	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "trace_id=abc")
	}
}

func TestNewMulti_RequiresLogger(t *testing.T) {
	_, err := NewMulti()
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	l.Info("x", nil)
	l.Error("x", errors.New("y"), nil)
	assert.Equal(t, l, l.WithFields(Fields{"a": 1}))
}

func TestNew_WithoutFluent(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig().Logging
	cfg.Color = false
	cfg.Level = "debug"

	log, closeFn, err := New(cfg, &buf)
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	defer closeFn()

	log.Debug("starting", Fields{"version": "dev"})
	assert.True(t, strings.Contains(buf.String(), "starting"))
	_, isSlog := log.(*SlogAdapter)
	assert.True(t, isSlog)
}
