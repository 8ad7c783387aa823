package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/money"
	"github.com/runnerr0/homehub/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version        string `json:"version"`
	ConfigPath     string `json:"config_path"`
	Dataset        string `json:"dataset"`
	Properties     int    `json:"properties"`
	Favorites      int    `json:"favorites"`
	FavoritesKey   string `json:"favorites_key"`
	Backend        string `json:"backend"`
	Location       string `json:"location,omitempty"`
	Keys           int64  `json:"keys"`
	StoredBytes    int64  `json:"stored_bytes"`
	AuditEntries   int64  `json:"audit_entries"`
	LastWrite      string `json:"last_write,omitempty"`
	ServerAddress  string `json:"server_address"`
	FluentEnabled  bool   `json:"fluent_enabled"`
	StatsAvailable bool   `json:"stats_available"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

func (c *StatusCommand) run(a *app) error {
	ctx := context.Background()

	out := statusJSON{
		Version:       c.version,
		ConfigPath:    a.configPath,
		Dataset:       "embedded",
		Properties:    a.catalog.Len(),
		Favorites:     a.favorites.Count(ctx),
		FavoritesKey:  a.favorites.Key(),
		Backend:       a.cfg.Storage.Backend,
		ServerAddress: net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		FluentEnabled: a.cfg.Logging.Fluent.Enabled,
	}
	if a.cfg.Catalog.Dataset != "" {
		out.Dataset = a.cfg.Catalog.Dataset
	}

	if insp, ok := a.kv.(storage.Inspector); ok {
		stats, err := insp.Stats(ctx)
		if err != nil {
			return fmt.Errorf("get stats: %w", err)
		}
		out.StatsAvailable = true
		out.Backend = stats.Backend
		out.Location = stats.Location
		out.Keys = stats.Keys
		out.StoredBytes = stats.Bytes
		out.AuditEntries = stats.AuditEntries
		if !stats.LastWrite.IsZero() {
			out.LastWrite = stats.LastWrite.UTC().Format(time.RFC3339)
		}
	}

	if jsonOutput(c.globals) {
		return printJSON(out)
	}
	c.printHuman(out)
	return nil
}

func (c *StatusCommand) printHuman(s statusJSON) {
	fmt.Println("HomeHub Status")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", s.Version)
	fmt.Printf("Config:        %s\n", s.ConfigPath)
	fmt.Printf("Dataset:       %s (%s %s)\n", s.Dataset, money.Number(float64(s.Properties)), plural(s.Properties, "property", "properties"))
	fmt.Printf("Favorites:     %s\n", money.Number(float64(s.Favorites)))

	fmt.Println()
	if s.Location != "" {
		fmt.Printf("Storage:       %s (%s)\n", s.Backend, s.Location)
	} else {
		fmt.Printf("Storage:       %s\n", s.Backend)
	}
	if s.StatsAvailable {
		fmt.Printf("Keys:          %s\n", money.Number(float64(s.Keys)))
		fmt.Printf("Stored:        %s\n", formatBytes(s.StoredBytes))
		if s.Backend == config.BackendSQLite {
			fmt.Printf("Audit log:     %s entries\n", money.Number(float64(s.AuditEntries)))
		}
		if s.LastWrite != "" {
			fmt.Printf("Last write:    %s\n", s.LastWrite)
		}
	}

	fmt.Println()
	fmt.Printf("API address:   %s\n", s.ServerAddress)
	if s.FluentEnabled {
		fmt.Println("Fluent:        enabled")
	} else {
		fmt.Println("Fluent:        disabled")
	}
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
