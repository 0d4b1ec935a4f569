package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/output"
	"github.com/dshills/redline/internal/review"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the redline configuration.
type Config struct {
	Format        string        `json:"format"`
	FailOn        string        `json:"failOn"`
	ClausesFile   string        `json:"clausesFile,omitempty"`
	MaxInputBytes int           `json:"maxInputBytes"`
	Logging       LoggingConfig `json:"logging"`
	Privacy       PrivacyConfig `json:"privacy"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// PrivacyConfig controls redaction of matched sentences in reports.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:        "text",
		FailOn:        "none",
		MaxInputBytes: 10 << 20,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !slices.Contains(output.Formats, c.Format) {
		return fmt.Errorf("%w: format %q (want one of %v)", ErrInvalidConfig, c.Format, output.Formats)
	}
	if c.FailOn != "none" {
		if _, ok := review.ParseRiskLevel(c.FailOn); !ok {
			return fmt.Errorf("%w: failOn %q (want none, low, medium or high)", ErrInvalidConfig, c.FailOn)
		}
	}
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("%w: maxInputBytes must not be negative", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	if !slices.Contains(logging.Formats, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format %q (want text or json)", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for redline.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "redline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "redline"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "redline"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "redline"), nil
	default:
		return filepath.Join(home, ".config", "redline"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile returns the defaults overlaid with the config file. A missing file
// yields the defaults.
func LoadFile() (Config, error) {
	cfg := Default()
	if err := readFile(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile decodes the config file onto cfg. Keys absent from the file keep
// their current value, so a file can turn redactSecrets off explicitly.
func readFile(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only flags the user set should be present).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()
	if err := readFile(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKeys maps environment variables to SetField keys.
var envKeys = []struct {
	env string
	key string
}{
	{"REDLINE_FORMAT", "format"},
	{"REDLINE_FAIL_ON", "failOn"},
	{"REDLINE_CLAUSES", "clausesFile"},
	{"REDLINE_MAX_INPUT_BYTES", "maxInputBytes"},
	{"REDLINE_LOG_LEVEL", "logging.level"},
	{"REDLINE_LOG_FORMAT", "logging.format"},
	{"REDLINE_REDACT_SECRETS", "privacy.redactSecrets"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists the keys accepted by SetField.
var Keys = []string{
	"format", "failOn", "clausesFile", "maxInputBytes",
	"logging.level", "logging.format", "privacy.redactSecrets",
}

// SetField sets a single config field by key name. Returns error if key is unknown
// or the value does not parse. Range checks are left to Validate.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "clausesFile":
		cfg.ClausesFile = value
	case "maxInputBytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxInputBytes must be an integer: %w", err)
		}
		cfg.MaxInputBytes = n
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		cfg.Logging.Format = value
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
