package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/invdash/internal/adapters/inbound/cli"
	"github.com/abdidvp/invdash/internal/adapters/outbound/api/apitest"
	"github.com/abdidvp/invdash/internal/adapters/outbound/session"
	"github.com/abdidvp/invdash/internal/domain"
)

type harness struct {
	backend     *apitest.Backend
	sessionPath string
	configPath  string
}

// newHarness starts a backend that accepts token "tok" and points the CLI at
// a temporary session file.
func newHarness(t *testing.T) *harness {
	t.Helper()
	b := apitest.NewBackend("tok")
	t.Cleanup(b.Close)
	dir := t.TempDir()
	return &harness{
		backend:     b,
		sessionPath: filepath.Join(dir, "session.json"),
		configPath:  filepath.Join(dir, "config.yaml"),
	}
}

func (h *harness) signIn(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, session.New(h.sessionPath).Save(domain.SessionState{
		Token: token,
		User:  &domain.UserRecord{Username: "alice"},
	}))
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmdForTest()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--api-url", h.backend.URL(),
		"--session-file", h.sessionPath,
		"--config", h.configPath,
		"--log-level", "disabled",
	}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) storedSession(t *testing.T) domain.SessionState {
	t.Helper()
	state, err := session.New(h.sessionPath).Load()
	require.NoError(t, err)
	return state
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
