package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"engulf/internal/input"
)

// CurrentVersion is the only config schema version understood.
const CurrentVersion = 1

// FileName is the base name searched for in the working directory; viper
// tries every supported extension (.json, .yaml, .yml, .toml).
const FileName = ".engulf"

// Config represents the complete engulf configuration
type Config struct {
	Version      int           `json:"version" mapstructure:"version"`
	GroupBy      []string      `json:"groupBy" mapstructure:"groupBy"`
	MaxDepth     int           `json:"maxDepth" mapstructure:"maxDepth"`
	InputFormat  string        `json:"inputFormat" mapstructure:"inputFormat"`
	OutputFormat string        `json:"outputFormat" mapstructure:"outputFormat"`
	Top          int           `json:"top" mapstructure:"top"`
	Logging      LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// EnvOverride records an environment variable that replaced a config value.
type EnvOverride struct {
	Env   string `json:"env"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LoadResult is a loaded config plus where its values came from.
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// EnvBinding maps a config key to its environment variable.
type EnvBinding struct {
	Key         string
	Env         string
	Description string
}

// EnvBindings lists every supported environment override.
var EnvBindings = []EnvBinding{
	{"groupBy", "ENGULF_GROUP_BY", "Comma-separated keys used to group array elements"},
	{"maxDepth", "ENGULF_MAX_DEPTH", "Maximum nesting depth, 0 for unbounded"},
	{"inputFormat", "ENGULF_INPUT_FORMAT", "auto, cbor, json, jsonc, toml or yaml"},
	{"outputFormat", "ENGULF_OUTPUT_FORMAT", "folded or json"},
	{"top", "ENGULF_TOP", "Rows shown by 'engulf top'"},
	{"logging.level", "ENGULF_LOG_LEVEL", "debug, info, warn or error"},
	{"logging.format", "ENGULF_LOG_FORMAT", "human or json"},
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentVersion,
		GroupBy:      []string{},
		MaxDepth:     0,
		InputFormat:  string(input.FormatAuto),
		OutputFormat: "folded",
		Top:          20,
		Logging: LoggingConfig{
			Format: "human",
			Level:  "warn",
		},
	}
}

// LoadConfig loads configuration from dir/.engulf.* and the environment.
func LoadConfig(dir string) (*Config, error) {
	result, err := LoadConfigWithDetails(dir, "")
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails loads configuration from configFile, or from
// dir/.engulf.* when configFile is empty, then applies ENGULF_* overrides.
// A missing file in dir is not an error; a missing explicit file is.
func LoadConfigWithDetails(dir, configFile string) (*LoadResult, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("groupBy", defaults.GroupBy)
	v.SetDefault("maxDepth", defaults.MaxDepth)
	v.SetDefault("inputFormat", defaults.InputFormat)
	v.SetDefault("outputFormat", defaults.OutputFormat)
	v.SetDefault("top", defaults.Top)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	for _, b := range EnvBindings {
		if err := v.BindEnv(b.Key, b.Env); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	result := &LoadResult{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, &ConfigError{Field: "file", Message: err.Error()}
		}
		result.UsedDefaults = true
	} else {
		result.ConfigPath = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	cfg.GroupBy = cleanKeys(cfg.GroupBy)

	for _, b := range EnvBindings {
		if val, ok := os.LookupEnv(b.Env); ok {
			result.EnvOverrides = append(result.EnvOverrides, EnvOverride{Env: b.Env, Key: b.Key, Value: val})
		}
	}

	result.Config = &cfg
	return result, nil
}

// cleanKeys trims group keys and drops empty ones, so "a, b," means [a b].
func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Save writes the configuration to dir/.engulf.json
func (c *Config) Save(dir string) (string, error) {
	configPath := filepath.Join(dir, FileName+".json")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}

	return configPath, os.WriteFile(configPath, append(data, '\n'), 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.MaxDepth < 0 {
		return &ConfigError{Field: "maxDepth", Message: "must be >= 0"}
	}
	if c.Top < 0 {
		return &ConfigError{Field: "top", Message: "must be >= 0"}
	}
	if _, err := input.ParseFormat(c.InputFormat); err != nil {
		return &ConfigError{Field: "inputFormat", Message: fmt.Sprintf("unknown format %q", c.InputFormat)}
	}
	switch c.OutputFormat {
	case "folded", "json":
	default:
		return &ConfigError{Field: "outputFormat", Message: fmt.Sprintf("unknown format %q", c.OutputFormat)}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
