package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvBaseURL = "CHAT_SESSION_BASE_URL"
	EnvTimeout = "CHAT_SESSION_TIMEOUT"
	EnvStore   = "CHAT_SESSION_STORE"
)

// DefaultBaseURL is the address of a locally running service
const DefaultBaseURL = "http://localhost:5000"

// Config holds the client settings
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	StorePath string        `yaml:"store_path"`
}

// ConfigManager loads and saves the config file in a directory
type ConfigManager struct {
	configDir string
}

// NewConfigManager creates a config manager rooted at configDir
func NewConfigManager(configDir string) *ConfigManager {
	return &ConfigManager{configDir: configDir}
}

// DefaultConfigDir returns ~/.chat-session
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".chat-session"), nil
}

// GetConfigDir returns the config directory path
func (cm *ConfigManager) GetConfigDir() string {
	return cm.configDir
}

// GetConfigPath returns the path to the YAML config file
func (cm *ConfigManager) GetConfigPath() string {
	return filepath.Join(cm.configDir, "config.yaml")
}

// Defaults returns the configuration used when nothing is set
func (cm *ConfigManager) Defaults() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   60 * time.Second,
		StorePath: filepath.Join(cm.configDir, "sessions.db"),
	}
}

// Load returns defaults overlaid with the config file (if present) and then
// the environment. A missing file is not an error.
func (cm *ConfigManager) Load() (*Config, error) {
	cfg := cm.Defaults()

	path := cm.GetConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		LogDebug("No config file at %s, using defaults", path)
	case err != nil:
		return nil, &ConfigError{Path: path, Err: err}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to unmarshal config: %w", err)}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, &ConfigError{Path: "environment", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Save writes the config file
func (cm *ConfigManager) Save(cfg *Config) error {
	if err := os.MkdirAll(cm.configDir, 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(cm.GetConfigPath(), data, 0600)
}

// ApplyEnv overrides fields from CHAT_SESSION_* variables
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		c.StorePath = v
	}
	return nil
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.StorePath == "" {
		return errors.New("store_path must not be empty")
	}
	return nil
}
