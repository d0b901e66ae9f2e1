package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

var configSave bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the resolved settings",
	Long: `Show the settings chat-session would use right now, after flags and
CHAT_SESSION_* environment variables are applied over the config file.

With --save the resolved settings are written to the config file, so that
for example

  chat-session config --base-url http://chat.internal:5000 --save

makes that address the default for later commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := configManager()
		if err != nil {
			return err
		}
		cfg, err := resolveConfig(cmd, cm)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if configSave {
			if err := cm.Save(cfg); err != nil {
				return &internal.ConfigError{Path: cm.GetConfigPath(), Err: err}
			}
			internal.PrintSuccess(out, "Saved settings to "+cm.GetConfigPath())
		}

		file := cm.GetConfigPath()
		if _, err := os.Stat(file); err != nil {
			file += " " + warningStyle.Render("(not created)")
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Config dir: "), cm.GetConfigDir())
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Config file:"), file)
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Server:     "), cfg.BaseURL)
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Timeout:    "), cfg.Timeout)
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Store:      "), cfg.StorePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the resolved settings to the config file")
}
