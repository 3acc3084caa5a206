package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCmd_StoresSession(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "login", "-u", "alice", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful")
	assert.Equal(t, "tok", h.storedSession(t).Token)
	assert.Equal(t, []string{"POST /login"}, h.backend.Routes())
}

func TestLoginCmd_PromptsForMissingCredentials(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "alice\nsecret1\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Username")
	assert.Contains(t, out, "Password")
	assert.Equal(t, "tok", h.storedSession(t).Token)

	body := h.backend.Calls()[0].Body
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "secret1", body["password"])
}

func TestLoginCmd_ShortPasswordNeverSends(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "login", "-u", "alice", "-p", "abc")
	require.Error(t, err)
	assert.Empty(t, h.backend.Calls())
	assert.False(t, fileExists(h.sessionPath))
}

func TestSignupCmd_UsesRegister(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "signup", "-u", "bob", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signup successful")
	assert.Equal(t, []string{"POST /register"}, h.backend.Routes())
}

func TestLoginCmd_BackendFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.FailWith("POST /login", 500)

	out, err := h.run(t, "", "login", "-u", "alice", "-p", "secret1")
	require.Error(t, err)
	assert.Contains(t, out, "Login failed")
	assert.True(t, h.storedSession(t).IsEmpty())
}

func TestWhoamiCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")

	h.signIn(t, "tok")
	out, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as alice")
}

func TestLogoutCmd_ClearsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "tok")

	out, err := h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")
	assert.False(t, fileExists(h.sessionPath))

	out, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")
}
