package testutil

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iksnae/chat-session/internal/devserver"
)

// NewDevServer starts a development chat service that lives as long as the test
func NewDevServer(t *testing.T, opts ...devserver.Option) (*httptest.Server, *devserver.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := devserver.New(opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, srv
}

// IsolateTab gives the test its own home directory, session store and tab
// key, pointed at baseURL. It returns the store path.
func IsolateTab(t *testing.T, baseURL string) string {
	t.Helper()
	home := CreateTempDir(t)
	storePath := filepath.Join(home, "sessions.db")

	t.Setenv("HOME", home)
	t.Setenv("CHAT_SESSION_TAB", "test:"+strings.ReplaceAll(t.Name(), "/", "-"))
	t.Setenv("CHAT_SESSION_BASE_URL", baseURL)
	t.Setenv("CHAT_SESSION_STORE", storePath)
	t.Setenv("CHAT_SESSION_TIMEOUT", "")
	return storePath
}

// CreateTempDir creates a temporary directory removed when the test ends
func CreateTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "chat-session-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir
}
