package logger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Poster is the part of *fluent.Fluent the adapter needs.
type Poster interface {
	Post(tag string, message interface{}) error
	Close() error
}

// FluentConfig describes the forward-protocol endpoint.
type FluentConfig struct {
	Host      string
	Port      int
	TagPrefix string
}

// NewFluentClient connects a fluent forward client. Creation does not
// guarantee the collector is reachable; delivery errors show up on Post.
func NewFluentClient(cfg FluentConfig) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent logger: %w", err)
	}
	return client, nil
}

// FluentAdapter implements Logger by posting records to a fluent collector,
// tagged with the level name.
type FluentAdapter struct {
	client   Poster
	fields   Fields
	minLevel slog.Level
	now      func() time.Time
}

func NewFluentAdapter(client Poster, minLevel slog.Leveler) (*FluentAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}

	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}

	return &FluentAdapter{
		client:   client,
		fields:   make(Fields),
		minLevel: level,
		now:      time.Now,
	}, nil
}

func (a *FluentAdapter) mergeFields(fields Fields) Fields {
	merged := make(Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *FluentAdapter) post(level slog.Level, tag, msg string, data Fields) {
	if level < a.minLevel {
		return
	}
	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = a.now().UTC().Format(time.RFC3339Nano)

	_ = a.client.Post(tag, data)
}

func (a *FluentAdapter) Info(msg string, fields Fields) {
	a.post(slog.LevelInfo, "info", msg, a.mergeFields(fields))
}

func (a *FluentAdapter) Warn(msg string, fields Fields) {
	a.post(slog.LevelWarn, "warn", msg, a.mergeFields(fields))
}

func (a *FluentAdapter) Error(msg string, err error, fields Fields) {
	data := a.mergeFields(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	a.post(slog.LevelError, "error", msg, data)
}

func (a *FluentAdapter) Debug(msg string, fields Fields) {
	a.post(slog.LevelDebug, "debug", msg, a.mergeFields(fields))
}

// WithFields returns a logger sharing the client with extended context.
func (a *FluentAdapter) WithFields(fields Fields) Logger {
	return &FluentAdapter{
		client:   a.client,
		fields:   a.mergeFields(fields),
		minLevel: a.minLevel,
		now:      a.now,
	}
}

func (a *FluentAdapter) Close() error {
	return a.client.Close()
}
