package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/vire-credit/internal/analysis"
	"github.com/bobmcallan/vire-credit/internal/common"
)

// Provider names accepted in [providers] primary / fallback.
const (
	ProviderArray = "array"
	ProviderPlaid = "plaid"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Providers ProvidersConfig `toml:"providers"`
	Analysis  AnalysisConfig  `toml:"analysis"`
	Disputes  DisputesConfig  `toml:"disputes"`
	Storage   StorageConfig   `toml:"storage"`
	Cache     CacheConfig     `toml:"cache"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ProvidersConfig selects the provider environment and which adapter serves
// as primary (direct pull) and fallback (link flow).
type ProvidersConfig struct {
	Environment string         `toml:"environment"` // sandbox | production | mock
	Primary     string         `toml:"primary"`
	Fallback    string         `toml:"fallback"` // empty disables the link flow
	Array       ProviderConfig `toml:"array"`
	Plaid       ProviderConfig `toml:"plaid"`
}

// ProviderConfig holds one provider's endpoints and credentials.
type ProviderConfig struct {
	SandboxURL    string `toml:"sandbox_url"`
	ProductionURL string `toml:"production_url"`
	APIKey        string `toml:"api_key"`
	Timeout       string `toml:"timeout"`
}

// BaseURL returns the endpoint for the given environment.
func (p ProviderConfig) BaseURL(environment string) string {
	if environment == "production" {
		return p.ProductionURL
	}
	return p.SandboxURL
}

// TimeoutDuration parses Timeout, falling back to 30s.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(p.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// Provider returns the settings for a named provider.
func (p ProvidersConfig) Provider(name string) (ProviderConfig, bool) {
	switch name {
	case ProviderArray:
		return p.Array, true
	case ProviderPlaid:
		return p.Plaid, true
	}
	return ProviderConfig{}, false
}

// AnalysisConfig exposes the analysis engine's rule-of-thumb constants.
type AnalysisConfig struct {
	LatePaymentPenalty      int     `toml:"late_payment_penalty"`
	UtilizationMultiplier   float64 `toml:"utilization_multiplier"`
	AgePointsPerYear        float64 `toml:"age_points_per_year"`
	MixPointsPerType        int     `toml:"mix_points_per_type"`
	InquiryPenalty          int     `toml:"inquiry_penalty"`
	InquiryWindowMonths     int     `toml:"inquiry_window_months"`
	InquiryThreshold        int     `toml:"inquiry_threshold"`
	InquiryImpactPerExtra   int     `toml:"inquiry_impact_per_extra"`
	UtilizationIssuePercent float64 `toml:"utilization_issue_percent"`
	UtilizationMajorPercent float64 `toml:"utilization_major_percent"`
	UtilizationImpactCap    int     `toml:"utilization_impact_cap"`
	CollectionImpact        int     `toml:"collection_impact"`
	PublicRecordImpact      int     `toml:"public_record_impact"`
	StaleTradelineYears     float64 `toml:"stale_tradeline_years"`
	StaleCollectionYears    float64 `toml:"stale_collection_years"`
	MinAccountTypes         int     `toml:"min_account_types"`
	HealthExcellent         int     `toml:"health_excellent"`
	HealthGood              int     `toml:"health_good"`
	HealthFair              int     `toml:"health_fair"`
	HealthPoor              int     `toml:"health_poor"`
}

// Policy converts the section into an analysis policy.
func (a AnalysisConfig) Policy() analysis.Policy {
	return analysis.Policy(a)
}

func analysisDefaults() AnalysisConfig {
	return AnalysisConfig(analysis.DefaultPolicy())
}

// DisputesConfig contains dispute orchestration settings.
type DisputesConfig struct {
	ResolutionDays int `toml:"resolution_days"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path     string `toml:"path"`
	InMemory bool   `toml:"in_memory"` // nothing survives a restart
}

// CacheConfig contains analysis cache settings.
type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// TTLDuration parses TTL, falling back to 10m.
func (c CacheConfig) TTLDuration() time.Duration {
	if d, err := time.ParseDuration(c.TTL); err == nil && d > 0 {
		return d
	}
	return 10 * time.Minute
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoggerConfig converts the section into logger construction settings.
func (l LoggingConfig) LoggerConfig() common.LoggingConfig {
	return common.LoggingConfig{
		Level:      l.Level,
		Outputs:    l.Outputs,
		FilePath:   l.FilePath,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies VIRE_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("VIRE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VIRE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if env := os.Getenv("VIRE_PROVIDER_ENV"); env != "" {
		config.Providers.Environment = strings.ToLower(strings.TrimSpace(env))
	}
	if key := os.Getenv("VIRE_ARRAY_API_KEY"); key != "" {
		config.Providers.Array.APIKey = key
	}
	if key := os.Getenv("VIRE_PLAID_API_KEY"); key != "" {
		config.Providers.Plaid.APIKey = key
	}
	if badgerPath := os.Getenv("VIRE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("VIRE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("VIRE_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate reports configuration problems that would prevent startup.
func (c *Config) Validate() error {
	var problems []string

	switch c.Providers.Environment {
	case "sandbox", "production", "mock":
	default:
		problems = append(problems, fmt.Sprintf("providers.environment %q must be sandbox, production or mock", c.Providers.Environment))
	}

	if c.Providers.Primary != ProviderArray {
		problems = append(problems, fmt.Sprintf("providers.primary %q must be %s (the only direct-pull provider)", c.Providers.Primary, ProviderArray))
	}
	if c.Providers.Fallback != "" && c.Providers.Fallback != ProviderPlaid {
		problems = append(problems, fmt.Sprintf("providers.fallback %q must be %s or empty", c.Providers.Fallback, ProviderPlaid))
	}

	if c.Providers.Environment == "production" {
		for _, name := range []string{c.Providers.Primary, c.Providers.Fallback} {
			p, ok := c.Providers.Provider(name)
			if !ok {
				continue
			}
			if p.APIKey == "" {
				problems = append(problems, fmt.Sprintf("providers.%s.api_key is required in production", name))
			}
			if p.ProductionURL == "" {
				problems = append(problems, fmt.Sprintf("providers.%s.production_url is required in production", name))
			}
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Cache.MaxEntries < 0 {
		problems = append(problems, "cache.max_entries must not be negative")
	}
	if c.Storage.Badger.Path == "" && !c.Storage.Badger.InMemory {
		problems = append(problems, "storage.badger.path is required unless in_memory is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
