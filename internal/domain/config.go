package domain

import (
	"fmt"
	"net/url"
	"time"
)

const DefaultAPIURL = "http://localhost:5555"

// ValidLogLevels enumerates accepted log_level values.
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// ClientConfig holds client configuration loaded from the config file.
type ClientConfig struct {
	APIURL          string   `yaml:"api_url"          json:"api_url"`
	LogLevel        string   `yaml:"log_level"        json:"log_level"`
	SessionFile     string   `yaml:"session_file"     json:"session_file,omitempty"`
	NotificationTTL Duration `yaml:"notification_ttl" json:"notification_ttl"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		APIURL:          DefaultAPIURL,
		LogLevel:        "warn",
		NotificationTTL: Duration(DefaultNotificationTTL),
	}
}

// Validate checks that configured values are usable.
func (c ClientConfig) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil {
			return fmt.Errorf("api_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api_url %q: scheme must be http or https", c.APIURL)
		}
		if u.Host == "" {
			return fmt.Errorf("api_url %q: missing host", c.APIURL)
		}
	}
	if c.LogLevel != "" {
		valid := false
		for _, l := range ValidLogLevels {
			if c.LogLevel == l {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown log_level %q", c.LogLevel)
		}
	}
	if c.NotificationTTL < 0 {
		return fmt.Errorf("notification_ttl must not be negative")
	}
	return nil
}

// Duration is a time.Duration that reads and writes as text like "3s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}
