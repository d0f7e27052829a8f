// Package config loads coa settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the dashboard connection and refresh settings. Durations of
// zero select the synchronizer's defaults.
type Config struct {
	BaseURL            string
	Resource           string
	Scope              string
	Token              string
	Insecure           bool
	LogFile            string
	RequestTimeout     time.Duration
	PollInterval       time.Duration
	MinInterval        time.Duration
	StaleThreshold     time.Duration
	StaleCheckInterval time.Duration
	DisablePolling     bool
	DiscardOutOfOrder  bool
}

const (
	DefaultConfigPath = "~/.config/coa/config.toml"
	defaultBaseURL    = "http://localhost:8080"
	defaultResource   = "coa"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{BaseURL: defaultBaseURL, Resource: defaultResource}
}

type rawConfig struct {
	BaseURL            string `toml:"base_url"`
	Resource           string `toml:"resource"`
	Scope              string `toml:"scope"`
	Token              string `toml:"token"`
	Insecure           bool   `toml:"insecure"`
	LogFile            string `toml:"log_file"`
	RequestTimeout     string `toml:"request_timeout"`
	PollInterval       string `toml:"poll_interval"`
	MinInterval        string `toml:"min_interval"`
	StaleThreshold     string `toml:"stale_threshold"`
	StaleCheckInterval string `toml:"stale_check_interval"`
	DisablePolling     bool   `toml:"disable_polling"`
	DiscardOutOfOrder  bool   `toml:"discard_out_of_order"`
}

// Load reads the config at path (DefaultConfigPath when blank). A missing
// file yields Default().
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Resource); v != "" {
		cfg.Resource = strings.Trim(v, "/")
	}
	cfg.Scope = strings.TrimSpace(raw.Scope)
	cfg.Token = strings.TrimSpace(raw.Token)
	cfg.Insecure = raw.Insecure
	cfg.DisablePolling = raw.DisablePolling
	cfg.DiscardOutOfOrder = raw.DiscardOutOfOrder
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	durations := []struct {
		key string
		val string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
		{"min_interval", raw.MinInterval, &cfg.MinInterval},
		{"stale_threshold", raw.StaleThreshold, &cfg.StaleThreshold},
		{"stale_check_interval", raw.StaleCheckInterval, &cfg.StaleCheckInterval},
	}
	for _, d := range durations {
		v, err := parseDuration(d.val)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("invalid config: base_url is required")
	}
	if c.PollInterval > 0 && c.PollInterval < time.Second {
		return fmt.Errorf("invalid config: poll_interval %v is below 1s", c.PollInterval)
	}
	if c.StaleThreshold > 0 && c.StaleCheckInterval > c.StaleThreshold {
		return fmt.Errorf("invalid config: stale_check_interval %v exceeds stale_threshold %v",
			c.StaleCheckInterval, c.StaleThreshold)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
