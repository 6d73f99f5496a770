// Package config handles configuration loading for gptcli.
// It supports a JSON config file, environment variables, and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the chat-completion API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 60 * time.Second
)

// Config holds the process configuration for gptcli. The user's credential,
// model and transcript are not here; they live in the settings store.
type Config struct {
	DataDir    string        // Settings database directory, default: <user config dir>/gptcli
	StateDir   string        // Debug log directory, default: ~/.local/state/gptcli
	BaseURL    string        // API root, default: https://api.openai.com/v1
	Timeout    time.Duration // Per-request timeout, default: 60s
	DebugLevel int           // Debug level 0-3, from GPTCLI_DEBUG
}

// DefaultPath returns the config file location, honoring GPTCLI_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("GPTCLI_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(userConfigDir(), "gptcli", "config.json")
}

// Load reads configuration from the given JSON file path,
// applies defaults for missing values, and overrides with environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	// Env vars take highest precedence. For base_url the gptcli-specific
	// name wins over the generic OpenAI one.
	v.MustBindEnv("data_dir", "GPTCLI_DATA_DIR")
	v.MustBindEnv("state_dir", "GPTCLI_STATE_DIR")
	v.MustBindEnv("base_url", "GPTCLI_BASE_URL", "OPENAI_BASE_URL")
	v.MustBindEnv("timeout", "GPTCLI_TIMEOUT")
	v.MustBindEnv("debug_level", "GPTCLI_DEBUG")

	// If the file doesn't exist, that's fine - we'll use defaults
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	timeout, err := parseTimeout(v.GetString("timeout"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:    v.GetString("data_dir"),
		StateDir:   v.GetString("state_dir"),
		BaseURL:    v.GetString("base_url"),
		Timeout:    timeout,
		DebugLevel: v.GetInt("debug_level"),
	}

	applyDefaults(cfg)

	// Clamp debug level to valid range
	if cfg.DebugLevel < 0 {
		cfg.DebugLevel = 0
	}
	if cfg.DebugLevel > 3 {
		cfg.DebugLevel = 3
	}

	return cfg, nil
}

// parseTimeout reads a Go duration ("90s", "2m"). A bare integer is a
// number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	return d, nil
}

// applyDefaults sets default values for any empty config fields.
func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(userConfigDir(), "gptcli")
	}
	if cfg.StateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = ""
		}
		cfg.StateDir = filepath.Join(homeDir, ".local", "state", "gptcli")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
}

// userConfigDir is the platform config root, falling back to ~/.config.
func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config")
}
