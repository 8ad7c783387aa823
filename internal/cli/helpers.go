package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/favorites"
	"github.com/runnerr0/homehub/internal/logger"
	"github.com/runnerr0/homehub/internal/storage"
)

// envFile is loaded from the working directory before the config.
const envFile = ".env"

// app bundles everything a command needs. Commands build one in Execute
// and hand it to a run method that tests call directly.
type app struct {
	cfg        *config.Config
	configPath string
	log        logger.Logger
	catalog    *catalog.Catalog
	kv         storage.KeyValue
	favorites  *favorites.Store

	closers []func() error
}

// loadConfig reads the config named by --config, or the default config,
// creating it on first use.
func loadConfig(g *GlobalFlags) (*config.Config, string, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, "", err
	}
	if g != nil && g.Config != "" {
		cfg, err := config.Load(g.Config)
		return cfg, g.Config, err
	}
	cfg, err := config.LoadOrCreate()
	return cfg, config.DefaultConfigPath, err
}

// loadCatalog reads the configured dataset, or the embedded one.
func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	path, err := cfg.ResolvedDataset()
	if err != nil {
		return nil, err
	}

	var props []catalog.Property
	if path == "" {
		props, err = catalog.Default()
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		props, err = catalog.LoadDataset(f)
	}
	if err != nil {
		return nil, err
	}
	return catalog.New(props), nil
}

// openApp loads config, logger, catalog and the favorites medium.
func openApp(g *GlobalFlags) (*app, error) {
	cfg, path, err := loadConfig(g)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g != nil && g.Verbose {
		cfg.Logging.Level = "debug"
	}

	log, closeLog, err := logger.New(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{cfg: cfg, configPath: path, log: log, closers: []func() error{closeLog}}

	a.catalog, err = loadCatalog(cfg.Catalog)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	a.kv, err = storage.Open(cfg.Storage, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.closers = append(a.closers, a.kv.Close)

	a.favorites = favorites.New(a.kv,
		favorites.WithKey(cfg.Storage.FavoritesKey),
		favorites.WithLogger(log),
	)

	log.Debug("Application opened", logger.Fields{
		"config":     path,
		"backend":    cfg.Storage.Backend,
		"properties": a.catalog.Len(),
	})
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// withApp opens the app, runs fn and closes the app.
func withApp(g *GlobalFlags, fn func(a *app) error) error {
	a, err := openApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// idArg returns the --id flag value, or the first positional argument.
func idArg(flag string, args []string) string {
	if id := strings.TrimSpace(flag); id != "" {
		return id
	}
	if len(args) > 0 {
		return strings.TrimSpace(args[0])
	}
	return ""
}

func jsonOutput(g *GlobalFlags) bool {
	return g != nil && g.JSON
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// plural picks the singular or plural noun for n.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
