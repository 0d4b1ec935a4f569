package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the config directory at an empty temp dir and clears the
// REDLINE_* environment for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, e := range envKeys {
		t.Setenv(e.env, "")
	}
	return dir
}

func writeConfigFile(t *testing.T, xdg, body string) {
	t.Helper()
	path := filepath.Join(xdg, "redline", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Format != "text" {
		t.Errorf("Default format = %q, want %q", cfg.Format, "text")
	}
	if cfg.FailOn != "none" {
		t.Errorf("Default failOn = %q, want %q", cfg.FailOn, "none")
	}
	if cfg.MaxInputBytes != 10<<20 {
		t.Errorf("Default maxInputBytes = %d, want %d", cfg.MaxInputBytes, 10<<20)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "text" {
		t.Errorf("Default logging = %+v", cfg.Logging)
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("Default redactSecrets should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"format", func(c *Config) { c.Format = "html" }},
		{"failOn", func(c *Config) { c.FailOn = "critical" }},
		{"maxInputBytes", func(c *Config) { c.MaxInputBytes = -1 }},
		{"logging.level", func(c *Config) { c.Logging.Level = "trace" }},
		{"logging.format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error %q does not name field %q", err, tt.name)
			}
		})
	}
}

func TestValidate_AcceptsAllThresholds(t *testing.T) {
	for _, v := range []string{"none", "low", "medium", "high"} {
		cfg := Default()
		cfg.FailOn = v
		if err := cfg.Validate(); err != nil {
			t.Errorf("failOn %q rejected: %v", v, err)
		}
	}
}

func TestMergeEnv(t *testing.T) {
	isolate(t)
	t.Setenv("REDLINE_FORMAT", "json")
	t.Setenv("REDLINE_FAIL_ON", "high")
	t.Setenv("REDLINE_CLAUSES", "/etc/redline/pack.yaml")
	t.Setenv("REDLINE_MAX_INPUT_BYTES", "2048")
	t.Setenv("REDLINE_LOG_LEVEL", "debug")
	t.Setenv("REDLINE_LOG_FORMAT", "json")
	t.Setenv("REDLINE_REDACT_SECRETS", "false")

	cfg := Default()
	if err := mergeEnv(&cfg); err != nil {
		t.Fatalf("mergeEnv error: %v", err)
	}

	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.FailOn != "high" {
		t.Errorf("FailOn = %q, want %q", cfg.FailOn, "high")
	}
	if cfg.ClausesFile != "/etc/redline/pack.yaml" {
		t.Errorf("ClausesFile = %q", cfg.ClausesFile)
	}
	if cfg.MaxInputBytes != 2048 {
		t.Errorf("MaxInputBytes = %d, want 2048", cfg.MaxInputBytes)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Privacy.RedactSecrets {
		t.Error("RedactSecrets should be false")
	}
}

func TestMergeEnv_InvalidMaxInputBytes(t *testing.T) {
	isolate(t)
	t.Setenv("REDLINE_MAX_INPUT_BYTES", "lots")

	cfg := Default()
	err := mergeEnv(&cfg)
	if err == nil {
		t.Fatal("expected error for non-integer REDLINE_MAX_INPUT_BYTES")
	}
	if !strings.Contains(err.Error(), "REDLINE_MAX_INPUT_BYTES") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	overrides := map[string]string{
		"format":        "sarif",
		"failOn":        "medium",
		"maxInputBytes": "4096",
		"logging.level": "info",
		"clausesFile":   "",
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		t.Fatalf("mergeOverrides: %v", err)
	}

	if cfg.Format != "sarif" {
		t.Errorf("Format = %q, want %q", cfg.Format, "sarif")
	}
	if cfg.FailOn != "medium" {
		t.Errorf("FailOn = %q, want %q", cfg.FailOn, "medium")
	}
	if cfg.MaxInputBytes != 4096 {
		t.Errorf("MaxInputBytes = %d, want 4096", cfg.MaxInputBytes)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.ClausesFile != "" {
		t.Errorf("empty override should not set ClausesFile, got %q", cfg.ClausesFile)
	}
}

func TestMergeOverrides_Nil(t *testing.T) {
	cfg := Default()
	if err := mergeOverrides(&cfg, nil); err != nil {
		t.Fatalf("mergeOverrides(nil): %v", err)
	}
	if cfg != Default() {
		t.Errorf("config changed with nil overrides: %+v", cfg)
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	tests := []struct {
		key   string
		value string
		check func() bool
	}{
		{"format", "markdown", func() bool { return cfg.Format == "markdown" }},
		{"failOn", "low", func() bool { return cfg.FailOn == "low" }},
		{"clausesFile", "pack.yml", func() bool { return cfg.ClausesFile == "pack.yml" }},
		{"maxInputBytes", "100", func() bool { return cfg.MaxInputBytes == 100 }},
		{"logging.level", "error", func() bool { return cfg.Logging.Level == "error" }},
		{"logging.format", "json", func() bool { return cfg.Logging.Format == "json" }},
		{"privacy.redactSecrets", "false", func() bool { return !cfg.Privacy.RedactSecrets }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := SetField(&cfg, tt.key, tt.value); err != nil {
				t.Fatalf("SetField(%q, %q): %v", tt.key, tt.value, err)
			}
			if !tt.check() {
				t.Errorf("SetField(%q, %q) did not apply", tt.key, tt.value)
			}
		})
	}
}

func TestSetField_UnknownKey(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "provider", "anthropic"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSetField_InvalidValues(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "maxInputBytes", "ten"); err == nil {
		t.Error("expected error for non-integer maxInputBytes")
	}
	if err := SetField(&cfg, "privacy.redactSecrets", "maybe"); err == nil {
		t.Error("expected error for non-boolean redactSecrets")
	}
}

func TestKeysAreSettable(t *testing.T) {
	values := map[string]string{"maxInputBytes": "1", "privacy.redactSecrets": "true"}
	for _, key := range Keys {
		cfg := Default()
		v, ok := values[key]
		if !ok {
			v = "x"
		}
		if err := SetField(&cfg, key, v); err != nil {
			t.Errorf("SetField(%q): %v", key, err)
		}
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", "redline") {
		t.Errorf("ConfigDir = %q", dir)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg-test", "redline", "config.json") {
		t.Errorf("ConfigPath = %q", path)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Format = "json"
	cfg.FailOn = "medium"
	cfg.Privacy.RedactSecrets = false
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded != cfg {
		t.Errorf("LoadFile = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadFile_NoFile(t *testing.T) {
	isolate(t)
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFile without file = %+v, want defaults", cfg)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	xdg := isolate(t)
	writeConfigFile(t, xdg, "{not json")
	if _, err := LoadFile(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	xdg := isolate(t)
	writeConfigFile(t, xdg, `{"failOn": "high", "privacy": {"redactSecrets": false}}`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FailOn != "high" {
		t.Errorf("FailOn = %q, want high", cfg.FailOn)
	}
	if cfg.Privacy.RedactSecrets {
		t.Error("file should be able to disable redaction")
	}
	if cfg.Format != "text" || cfg.MaxInputBytes != 10<<20 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoad_Precedence(t *testing.T) {
	xdg := isolate(t)
	writeConfigFile(t, xdg, `{"format": "markdown", "failOn": "low", "maxInputBytes": 100}`)
	t.Setenv("REDLINE_FORMAT", "json")
	t.Setenv("REDLINE_FAIL_ON", "medium")

	cfg, err := Load(map[string]string{"failOn": "high"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxInputBytes != 100 {
		t.Errorf("MaxInputBytes = %d, want file value 100", cfg.MaxInputBytes)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want env value json", cfg.Format)
	}
	if cfg.FailOn != "high" {
		t.Errorf("FailOn = %q, want override value high", cfg.FailOn)
	}
}

func TestLoad_InvalidResult(t *testing.T) {
	isolate(t)
	_, err := Load(map[string]string{"format": "pdf"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() = %v, want ErrInvalidConfig", err)
	}
}
