package logger

import (
	"io"
	"log/slog"

	"github.com/runnerr0/homehub/internal/config"
)

// New builds the process logger from config. The returned closer flushes
// the fluent sink when one is enabled and is never nil.
func New(cfg config.LoggingConfig, w io.Writer) (Logger, func() error, error) {
	level := ParseLevel(cfg.Level)
	base := NewSlogAdapter(SlogConfig{
		Writer:   w,
		Level:    level,
		IsJSON:   cfg.JSON,
		UseColor: cfg.Color,
	})

	noClose := func() error { return nil }
	if !cfg.Fluent.Enabled {
		return base, noClose, nil
	}

	client, err := NewFluentClient(FluentConfig{
		Host:      cfg.Fluent.Host,
		Port:      cfg.Fluent.Port,
		TagPrefix: cfg.Fluent.TagPrefix,
	})
	if err != nil {
		return nil, noClose, err
	}

	var fluentLevel slog.Leveler = ParseLevel(cfg.Fluent.Level)
	fl, err := NewFluentAdapter(client, fluentLevel)
	if err != nil {
		client.Close()
		return nil, noClose, err
	}

	multi, err := NewMulti(base, fl)
	if err != nil {
		client.Close()
		return nil, noClose, err
	}
	return multi, fl.Close, nil
}
