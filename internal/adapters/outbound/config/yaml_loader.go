package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/invdash/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.yaml"

// Environment variables that override the file.
const (
	EnvAPIURL      = "INVDASH_API_URL"
	EnvLogLevel    = "INVDASH_LOG_LEVEL"
	EnvSessionFile = "INVDASH_SESSION_FILE"
)

// YAMLLoader implements domain.ConfigLoader by reading a YAML file and applying
// environment overrides.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader reading the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// NewWithEnv creates a YAMLLoader with a custom environment lookup.
func NewWithEnv(getenv func(string) string) *YAMLLoader { return &YAMLLoader{getenv: getenv} }

// DefaultPath returns ~/.config/invdash/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "invdash", FileName), nil
}

// LoadDotEnv loads variables from a .env file in the working directory when one
// exists. Variables already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads the config at path (the default location when empty).
// Returns DefaultConfig with overrides applied if the file does not exist.
func (l *YAMLLoader) Load(path string) (domain.ClientConfig, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return domain.ClientConfig{}, err
		}
		path = p
	}

	cfg := domain.DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg domain.ClientConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return domain.ClientConfig{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		// Validate before merging so typos in the file are reported against it.
		if err := fileCfg.Validate(); err != nil {
			return domain.ClientConfig{}, fmt.Errorf("invalid %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	case errors.Is(err, os.ErrNotExist):
	default:
		return domain.ClientConfig{}, err
	}

	cfg = l.applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid environment override: %w", err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit (non-zero) values on top of base.
func mergeConfig(base, override domain.ClientConfig) domain.ClientConfig {
	result := base
	if override.APIURL != "" {
		result.APIURL = override.APIURL
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.SessionFile != "" {
		result.SessionFile = override.SessionFile
	}
	if override.NotificationTTL != 0 {
		result.NotificationTTL = override.NotificationTTL
	}
	return result
}

func (l *YAMLLoader) applyEnv(cfg domain.ClientConfig) domain.ClientConfig {
	if v := l.getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := l.getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := l.getenv(EnvSessionFile); v != "" {
		cfg.SessionFile = v
	}
	return cfg
}
