package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if len(cfg.GroupBy) != 0 {
		t.Errorf("GroupBy = %v, want no grouping by default", cfg.GroupBy)
	}
	if cfg.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0 (unbounded)", cfg.MaxDepth)
	}
	if cfg.OutputFormat != "folded" {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, "folded")
	}
	if cfg.Top <= 0 {
		t.Error("Top should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, "", false},
		{"bounded depth", func(c *Config) { c.MaxDepth = 64 }, "", false},
		{"yaml input", func(c *Config) { c.InputFormat = "yaml" }, "", false},
		{"json output", func(c *Config) { c.OutputFormat = "json" }, "", false},
		{"unsupported version", func(c *Config) { c.Version = 2 }, "version", true},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "maxDepth", true},
		{"negative top", func(c *Config) { c.Top = -5 }, "top", true},
		{"unknown input", func(c *Config) { c.InputFormat = "xml" }, "inputFormat", true},
		{"unknown output", func(c *Config) { c.OutputFormat = "svg" }, "outputFormat", true},
		{"unknown log format", func(c *Config) { c.Logging.Format = "logfmt" }, "logging.format", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "maxDepth",
		Message: "must be >= 0",
	}

	got := err.Error()
	want := "config error in field 'maxDepth': must be >= 0"

	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := LoadConfigWithDetails(tmpDir, "")
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}

	if !result.UsedDefaults {
		t.Error("UsedDefaults should be true without a config file")
	}
	if !reflect.DeepEqual(result.Config, DefaultConfig()) {
		t.Errorf("Config = %+v, want defaults %+v", result.Config, DefaultConfig())
	}
}

func TestLoadConfig_FromYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `version: 1
groupBy:
  - type
  - kind
maxDepth: 32
logging:
  level: debug
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".engulf.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	result, err := LoadConfigWithDetails(tmpDir, "")
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}

	cfg := result.Config
	if !reflect.DeepEqual(cfg.GroupBy, []string{"type", "kind"}) {
		t.Errorf("GroupBy = %v, want [type kind]", cfg.GroupBy)
	}
	if cfg.MaxDepth != 32 {
		t.Errorf("MaxDepth = %d, want 32", cfg.MaxDepth)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Top != DefaultConfig().Top {
		t.Errorf("Top = %d, want default %d", cfg.Top, DefaultConfig().Top)
	}
	if result.UsedDefaults || result.ConfigPath == "" {
		t.Errorf("result should point at the file, got %+v", result)
	}
}

func TestLoadConfig_ExplicitTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := "version = 1\ngroupBy = [\"id\"]\noutputFormat = \"json\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	result, err := LoadConfigWithDetails(t.TempDir(), path)
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}
	if result.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", result.ConfigPath, path)
	}
	if result.Config.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want json", result.Config.OutputFormat)
	}
	if !reflect.DeepEqual(result.Config.GroupBy, []string{"id"}) {
		t.Errorf("GroupBy = %v, want [id]", result.Config.GroupBy)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfigWithDetails(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadConfigWithDetails() should fail for a missing explicit file")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".engulf.json"), []byte(`{"version": 1, "maxDepth": 4}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("ENGULF_GROUP_BY", "type, kind,")
	t.Setenv("ENGULF_MAX_DEPTH", "9")
	t.Setenv("ENGULF_LOG_LEVEL", "info")

	result, err := LoadConfigWithDetails(tmpDir, "")
	if err != nil {
		t.Fatalf("LoadConfigWithDetails() error = %v", err)
	}

	cfg := result.Config
	if !reflect.DeepEqual(cfg.GroupBy, []string{"type", "kind"}) {
		t.Errorf("GroupBy = %v, want [type kind]", cfg.GroupBy)
	}
	if cfg.MaxDepth != 9 {
		t.Errorf("MaxDepth = %d, want 9 (env beats file)", cfg.MaxDepth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if len(result.EnvOverrides) != 3 {
		t.Errorf("EnvOverrides = %v, want 3 entries", result.EnvOverrides)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.GroupBy = []string{"type"}
	cfg.MaxDepth = 42

	path, err := cfg.Save(tmpDir)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != ".engulf.json" {
		t.Errorf("Save() path = %q, want .engulf.json", path)
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestEnvBindingsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range EnvBindings {
		if seen[b.Env] {
			t.Errorf("duplicate env var %s", b.Env)
		}
		seen[b.Env] = true
		if b.Description == "" {
			t.Errorf("%s has no description", b.Env)
		}
	}
}
