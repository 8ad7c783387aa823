package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:       BackendSQLite,
			Path:          "~/.config/homehub",
			SQLiteFile:    "homehub.db",
			FavoritesFile: "favorites.json",
			FavoritesKey:  "homehub_favorites",
		},
		Catalog: CatalogConfig{
			Dataset: "",
		},
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
			Color: true,
			Fluent: FluentConfig{
				Enabled:   false,
				Host:      "127.0.0.1",
				Port:      24224,
				TagPrefix: "homehub",
				Level:     "info",
			},
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8731,
		},
		Mortgage: MortgageConfig{
			LoanTermYears:      30,
			InterestRate:       6.5,
			DownPaymentPercent: 20,
		},
		Map: MapConfig{
			Precision: 5,
		},
	}
}
