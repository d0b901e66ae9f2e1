package cmd

import (
	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/spf13/cobra"
)

// chatApp is everything a command needs to act on this tab's session
type chatApp struct {
	cfg    *internal.Config
	client *api.Client
	store  *internal.SQLiteStore
	ctrl   *internal.Controller
}

// configManager returns the manager for --config-dir, or ~/.chat-session
func configManager() (*internal.ConfigManager, error) {
	dir := configDir
	if dir == "" {
		d, err := internal.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return internal.NewConfigManager(dir), nil
}

// loadConfig resolves the settings: flags over environment over config file
func loadConfig(cmd *cobra.Command) (*internal.Config, error) {
	cm, err := configManager()
	if err != nil {
		return nil, err
	}
	return resolveConfig(cmd, cm)
}

func resolveConfig(cmd *cobra.Command, cm *internal.ConfigManager) (*internal.Config, error) {
	cfg, err := cm.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("store") {
		cfg.StorePath = storePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, &internal.ConfigError{Path: "flags", Err: err}
	}
	return cfg, nil
}

func newClient(cfg *internal.Config) *api.Client {
	return api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(internal.Logger()),
	)
}

// openApp loads the config and opens this tab's session store. Callers must
// call close.
func openApp(cmd *cobra.Command) (*chatApp, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	store, err := internal.OpenSQLiteStore(cfg.StorePath, internal.CurrentTabKey())
	if err != nil {
		return nil, err
	}
	internal.LogDebug("Using %s for tab %s", store.Path(), store.TabKey())

	client := newClient(cfg)
	return &chatApp{
		cfg:    cfg,
		client: client,
		store:  store,
		ctrl:   internal.NewController(client, store),
	}, nil
}

func (a *chatApp) close() {
	if err := a.store.Close(); err != nil {
		internal.LogWarn("Failed to close session store: %v", err)
	}
}

// saveTranscript records what the chat view now shows so that export can
// pick it up from a later command
func (a *chatApp) saveTranscript() {
	sess, ok := a.ctrl.Session()
	if !ok {
		return
	}
	if err := a.store.SaveTranscript(sess.ContextID, a.ctrl.Conversation().Entries()); err != nil {
		internal.LogWarn("%v", err)
	}
}
