package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/invdash/internal/adapters/inbound/cli"
	"github.com/abdidvp/invdash/internal/adapters/outbound/config"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "invdash", "config.yaml")

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"--config", dest, "init"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_url: http://localhost:5555")
	assert.Contains(t, string(data), "log_level: warn")
	assert.Contains(t, string(data), "notification_ttl: 3s")
}

func TestInitCmd_OutputLoads(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.yaml")

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"--config", dest, "--api-url", "https://inventory.example.com", "init"})
	require.NoError(t, root.Execute())

	cfg, err := config.NewWithEnv(func(string) string { return "" }).Load(dest)
	require.NoError(t, err)
	assert.Equal(t, "https://inventory.example.com", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(dest, []byte("api_url: http://x\n"), 0o644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"--config", dest, "init"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"--config", dest, "init", "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_url:")
}

func TestInitCmd_RejectsBadLogLevel(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.yaml")

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"--config", dest, "--log-level", "loud", "init"})
	require.Error(t, root.Execute())
	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}
