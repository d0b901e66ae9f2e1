package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/iksnae/chat-session/internal/devserver"
	"github.com/iksnae/chat-session/testutil"
)

func TestCommands_FullSession(t *testing.T) {
	ts, srv := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "unauthenticated")
	assert.Contains(t, out, "login")

	_, err = execute(t, "contexts")
	assert.ErrorIs(t, err, internal.ErrNoSession, "contexts must not be fetched without a session")

	_, err = execute(t, "login", "--user", "test", "--password", "wrong")
	var rejected *internal.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Invalid credentials", rejected.Reason)

	out, err = execute(t, "login", "--user", "test", "--password", "test")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as test")
	assert.Equal(t, 1, srv.SessionCount())

	out, err = execute(t, "contexts")
	require.NoError(t, err)
	assert.Contains(t, out, "Taro Yamada")
	assert.Contains(t, out, "Saitama Heavy Industries")

	_, err = execute(t, "send", "too early")
	assert.ErrorIs(t, err, internal.ErrNoContext)

	out, err = execute(t, "select", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected u1")

	out, err = execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "in-conversation")
	assert.Contains(t, out, "u1")

	out, err = execute(t, "send", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "[Taro Yamada] You said: hello")

	out, err = execute(t, "send", "--reply-only", "again")
	require.NoError(t, err)
	assert.Equal(t, "[Taro Yamada] You said: again\n", out)

	out, err = execute(t, "export", "--format", "jsonl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "the transcript is the server's full list")
	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "hello", first["content"])
	assert.Equal(t, "u1", first["context_id"])

	_, err = execute(t, "reset")
	require.NoError(t, err)
	out, err = execute(t, "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entries": []`)

	_, err = execute(t, "finish")
	require.NoError(t, err)
	assert.Equal(t, 0, srv.SessionCount())

	out, err = execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "unauthenticated")

	_, err = execute(t, "send", "after finish")
	assert.ErrorIs(t, err, internal.ErrNoSession)
}

func TestCommands_TabsAreIsolated(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	_, err := execute(t, "login", "-u", "test", "-p", "test")
	require.NoError(t, err)

	t.Setenv(internal.TabEnvVar, "another-tab")
	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "unauthenticated")
}

func TestCommands_LoginPromptsForMissingCredentials(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	resetFlags(rootCmd)
	rootCmd.SetIn(strings.NewReader("test\ntest\n"))
	var stdout, stderr strings.Builder
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"login"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, stderr.String(), "User ID: ")
	assert.Contains(t, stderr.String(), "Password: ")
	assert.Contains(t, stdout.String(), "Logged in as test")
}

func TestCommands_SelectFailureKeepsState(t *testing.T) {
	ts, srv := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	_, err := execute(t, "login", "-u", "test", "-p", "test")
	require.NoError(t, err)

	// The service goes away while the client still holds its token.
	ts.Close()
	_, err = execute(t, "select", "u1")
	var transportErr *api.TransportError
	require.ErrorAs(t, err, &transportErr)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State: authenticated")
	assert.Equal(t, 1, srv.SessionCount())
}

func TestCommands_LogoutIsLocal(t *testing.T) {
	ts, srv := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	out, err := execute(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")

	_, err = execute(t, "login", "-u", "test", "-p", "test")
	require.NoError(t, err)
	out, err = execute(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	assert.Equal(t, 1, srv.SessionCount(), "logout does not contact the server")
}

func TestCommands_ExportToFile(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	for _, args := range [][]string{
		{"login", "-u", "test", "-p", "test"},
		{"select", "u2"},
		{"send", "status report"},
	} {
		_, err := execute(t, args...)
		require.NoError(t, err, args)
	}

	path := filepath.Join(t.TempDir(), "chat.md")
	_, err := execute(t, "export", "-f", "md", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "**Context:** u2")
	assert.Contains(t, string(data), "[Hanako Suzuki] You said: status report")
}

func TestCommands_ExportErrors(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	_, err := execute(t, "export", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "export")
	assert.ErrorIs(t, err, internal.ErrNoSession)
}

func TestCommands_Healthcheck(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	out, err := execute(t, "healthcheck", "-V")
	require.NoError(t, err)
	assert.Contains(t, out, "Service answered with 3 context(s)")
	assert.Contains(t, out, "WARNING: Not logged in")
	assert.Contains(t, out, ts.URL)

	ts.Close()
	_, err = execute(t, "healthcheck")
	assert.ErrorContains(t, err, "health check failed")
}

func TestCommands_ConfigPrecedence(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	out, err := execute(t, "status", "--base-url", "http://flag.example:1234")
	require.NoError(t, err)
	assert.Contains(t, out, "http://flag.example:1234")

	out, err = execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, ts.URL)

	_, err = execute(t, "status", "--base-url", "ftp://nope")
	var cfgErr *internal.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCommands_DevserverBadContextsFile(t *testing.T) {
	_, err := execute(t, "devserver", "--contexts", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCommands_DevserverContextsFixture(t *testing.T) {
	path := testutil.WriteContextsFixture(t, t.TempDir(), testutil.SampleContexts())
	contexts, err := devserver.LoadContexts(path)
	require.NoError(t, err)
	ts, _ := testutil.NewDevServer(t, devserver.WithContexts(contexts))
	testutil.IsolateTab(t, ts.URL)

	_, err = execute(t, "login", "-u", "test", "-p", "test")
	require.NoError(t, err)
	out, err := execute(t, "contexts")
	require.NoError(t, err)
	assert.Contains(t, out, "Mori Logistics")
	assert.NotContains(t, out, "Taro Yamada")
}

func TestCommands_SendBlankMessage(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)

	_, err := execute(t, "login", "-u", "test", "-p", "test")
	require.NoError(t, err)
	_, err = execute(t, "select", "u1")
	require.NoError(t, err)

	out, err := execute(t, "send", "--reply-only", "   ")
	require.NoError(t, err)
	assert.Equal(t, "[Taro Yamada] You said:    \n", out)
}

func TestCommands_Config(t *testing.T) {
	ts, _ := testutil.NewDevServer(t)
	testutil.IsolateTab(t, ts.URL)
	dir := t.TempDir()

	out, err := execute(t, "config", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "(not created)")
	assert.Contains(t, out, ts.URL)
	assert.Contains(t, out, dir)

	out, err = execute(t, "config", "--config-dir", dir,
		"--base-url", "http://saved.example:9000", "--timeout", "5s", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved settings to "+filepath.Join(dir, "config.yaml"))
	assert.NotContains(t, out, "(not created)")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://saved.example:9000")

	// Without the environment override the saved file is what applies.
	t.Setenv("CHAT_SESSION_BASE_URL", "")
	out, err = execute(t, "config", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "http://saved.example:9000")
	assert.Contains(t, out, "5s")

	_, err = execute(t, "config", "--config-dir", dir, "--base-url", "ftp://nope", "--save")
	var cfgErr *internal.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
