// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
	"translation-quote/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. QUOTE_REGIME_PATH.
const EnvPrefix = "QUOTE_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Regime contains pricing regime settings
	Regime RegimeConfig `json:"regime"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// RegimeConfig contains pricing regime settings
type RegimeConfig struct {
	// Path is the HCL regime file
	Path string `json:"path"`

	// DefaultRegion is used when a request names no billing region
	DefaultRegion string `json:"default_region,omitempty"`

	// FallbackTaxRate, when set, is applied to regions without tax rows
	// instead of failing with REGION_NOT_FOUND
	FallbackTaxRate string `json:"fallback_tax_rate,omitempty"`

	// FallbackTaxName labels the fallback rate
	FallbackTaxName string `json:"fallback_tax_name,omitempty"`

	// DiffThreshold is the per-document amount treated as unchanged in
	// re-quote diffs
	DiffThreshold string `json:"diff_threshold,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json, markdown)
	DefaultFormat string `json:"default_format"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// MetricsNamespace prefixes every Prometheus metric
	MetricsNamespace string `json:"metrics_namespace"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Regime: RegimeConfig{
			Path: "regime.hcl",
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			MetricsNamespace:    "translation_quote",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("reading config file", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("parsing config file "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays QUOTE_* environment variables onto c. Variables from
// envFiles (or ./.env when none are given) are loaded first; variables
// already present in the environment win over the files.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		// a missing .env is normal
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return errors.Config("loading env file", err)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return errors.Config("loading environment", err)
	}

	setString(k, "regime_path", &c.Regime.Path)
	setString(k, "default_region", &c.Regime.DefaultRegion)
	setString(k, "fallback_tax_rate", &c.Regime.FallbackTaxRate)
	setString(k, "fallback_tax_name", &c.Regime.FallbackTaxName)
	setString(k, "diff_threshold", &c.Regime.DiffThreshold)
	setString(k, "output_format", &c.Output.DefaultFormat)
	setString(k, "server_addr", &c.Server.Addr)
	setString(k, "metrics_namespace", &c.Server.MetricsNamespace)
	setString(k, "log_level", &c.Logging.Level)
	setString(k, "log_format", &c.Logging.Format)
	setString(k, "log_output", &c.Logging.Output)
	setString(k, "log_service", &c.Logging.Service)

	for key, dst := range map[string]*int{
		"server_read_timeout_seconds":  &c.Server.ReadTimeoutSeconds,
		"server_write_timeout_seconds": &c.Server.WriteTimeoutSeconds,
	} {
		if v := strings.TrimSpace(k.String(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Config("invalid "+EnvPrefix+strings.ToUpper(key), err)
			}
			*dst = n
		}
	}
	return nil
}

func setString(k *koanf.Koanf, key string, dst *string) {
	if v := strings.TrimSpace(k.String(key)); v != "" {
		*dst = v
	}
}

// FallbackTax returns the configured fallback tax region, or nil when none
// is configured.
func (c *Config) FallbackTax() (*types.TaxRegion, error) {
	raw := strings.TrimSpace(c.Regime.FallbackTaxRate)
	if raw == "" {
		return nil, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Config("invalid fallback tax rate "+raw, err)
	}
	if rate.IsNegative() {
		return nil, errors.New(errors.TypeConfig, "fallback tax rate must be non-negative")
	}
	name := c.Regime.FallbackTaxName
	if name == "" {
		name = "Tax"
	}
	return &types.TaxRegion{
		Components:  []types.TaxComponent{{Name: name, Rate: rate}},
		TotalRate:   rate,
		DisplayName: name,
	}, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
