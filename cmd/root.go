package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	baseURL   string
	timeout   time.Duration
	storePath string
	configDir string
	version   string = "dev"
	commit    string = "unknown"
	date      string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-session",
	Short: "Talk to a remote chat assistant from the terminal",
	Long: `A terminal client for a remote chat service.

Log in, pick the context you want to talk about, then chat with the
assistant hosted by the service. The session lives in the terminal tab you
logged in from: other tabs do not see it, and it goes away when the tab is
closed.

Quick Start:
  chat-session login                  # Log in (prompts for credentials)
  chat-session contexts               # List the selectable contexts
  chat-session select <id>            # Start a conversation about one
  chat-session send "hello"           # Send a message
  chat-session finish                 # End the session
  chat-session tui                    # Do all of the above interactively

Settings are read from flags, then CHAT_SESSION_* environment variables,
then ~/.chat-session/config.yaml.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Chat service address (default "+internal.DefaultBaseURL+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (default 60s)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Session database file (default ~/.chat-session/sessions.db)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.chat-session)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.SilenceErrors = true
}
