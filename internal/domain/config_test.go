package domain_test

import (
	"testing"
	"time"

	"github.com/abdidvp/invdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "http://localhost:5555", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.NotificationTTL.Std())
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ClientConfig)
		wantErr string
	}{
		{"bad scheme", func(c *domain.ClientConfig) { c.APIURL = "ftp://x" }, "scheme"},
		{"missing host", func(c *domain.ClientConfig) { c.APIURL = "http://" }, "missing host"},
		{"bad log level", func(c *domain.ClientConfig) { c.LogLevel = "loud" }, "log_level"},
		{"negative ttl", func(c *domain.ClientConfig) { c.NotificationTTL = -1 }, "notification_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDuration_YAML(t *testing.T) {
	var cfg domain.ClientConfig
	require.NoError(t, yaml.Unmarshal([]byte("notification_ttl: 1500ms\n"), &cfg))
	assert.Equal(t, 1500*time.Millisecond, cfg.NotificationTTL.Std())

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "notification_ttl: 1.5s")
}
