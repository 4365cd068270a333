package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Providers: ProvidersConfig{
			Environment: "sandbox",
			Primary:     ProviderArray,
			Fallback:    ProviderPlaid,
			Array: ProviderConfig{
				SandboxURL:    "https://sandbox.array.io",
				ProductionURL: "https://api.array.io",
				Timeout:       "30s",
			},
			Plaid: ProviderConfig{
				SandboxURL:    "https://sandbox.plaid.com",
				ProductionURL: "https://production.plaid.com",
				Timeout:       "30s",
			},
		},
		Analysis: analysisDefaults(),
		Disputes: DisputesConfig{
			ResolutionDays: 30,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/vire-credit",
			},
		},
		Cache: CacheConfig{
			TTL:        "10m",
			MaxEntries: 500,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			Outputs: []string{"console", "file"},
		},
	}
}
