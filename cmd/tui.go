package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/export"
	"github.com/iksnae/chat-session/internal/tui"
	"github.com/spf13/cobra"
)

var (
	tuiEphemeral bool
	tuiExportDir string
	tuiFormat    string
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Chat interactively",
	Long: `Open the interactive client. It starts on the furthest screen this
tab's session allows: login, context selection or chat.

With --ephemeral the session is kept in memory and is gone when the client
exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := export.NewExporter(tuiFormat); err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var ctrl *internal.Controller
		if tuiEphemeral {
			ctrl = internal.NewController(newClient(cfg), internal.NewMemoryStore())
		} else {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()
			ctrl = app.ctrl
		}

		// Log lines would tear the alternate screen, so they go to a file.
		logPath := filepath.Join(filepath.Dir(cfg.StorePath), "tui.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			internal.SetLogOutput(io.Discard)
		} else {
			defer func() { _ = logFile.Close() }()
			internal.SetLogOutput(logFile)
		}
		defer internal.SetLogOutput(os.Stderr)

		return tui.Run(ctrl, tui.WithExportDir(tuiExportDir), tui.WithExportFormat(tuiFormat))
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiEphemeral, "ephemeral", false, "Keep the session in memory only")
	tuiCmd.Flags().StringVar(&tuiExportDir, "export-dir", ".", "Directory ctrl+e writes transcripts to")
	tuiCmd.Flags().StringVar(&tuiFormat, "export-format", "md", "Format ctrl+e writes (jsonl, md, yaml, json)")
}
