package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBaseURL, EnvTimeout, EnvStore} {
		t.Setenv(key, "")
	}
}

func TestConfigManager_Defaults(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	cm := NewConfigManager(dir)

	cfg, err := cm.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(dir, "sessions.db"), cfg.StorePath)
	assert.Equal(t, dir, cm.GetConfigDir())
}

func TestConfigManager_FileAndEnv(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	cm := NewConfigManager(dir)
	require.NoError(t, os.WriteFile(cm.GetConfigPath(), []byte("base_url: https://chat.example.com\ntimeout: 15s\n"), 0600))

	cfg, err := cm.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	t.Setenv(EnvBaseURL, "http://127.0.0.1:9999")
	t.Setenv(EnvTimeout, "2s")
	t.Setenv(EnvStore, "/tmp/other.db")
	cfg, err = cm.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/other.db", cfg.StorePath)
}

func TestConfigManager_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"malformed yaml", "base_url: [unclosed\n", nil},
		{"bad scheme", "base_url: ftp://example.com\n", nil},
		{"missing host", "base_url: http://\n", nil},
		{"negative timeout", "timeout: -1s\n", nil},
		{"bad env timeout", "", map[string]string{EnvTimeout: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cm := NewConfigManager(t.TempDir())
			if tt.file != "" {
				require.NoError(t, os.WriteFile(cm.GetConfigPath(), []byte(tt.file), 0600))
			}
			_, err := cm.Load()
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestConfigManager_SaveRoundTrip(t *testing.T) {
	clearConfigEnv(t)
	cm := NewConfigManager(filepath.Join(t.TempDir(), "nested"))
	want := &Config{BaseURL: "https://chat.example.com", Timeout: 5 * time.Second, StorePath: "/tmp/s.db"}
	require.NoError(t, cm.Save(want))

	got, err := cm.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
