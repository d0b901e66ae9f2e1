package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format     string
	outputFile string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current conversation to a file",
	Long: `Export the conversation this tab last received from the service in
one of the supported formats (jsonl, md, yaml, json). Writes to stdout when
no output file is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		if _, ok := app.ctrl.Session(); !ok {
			return internal.ErrNoSession
		}
		contextID, entries, err := app.store.LoadTranscript()
		if err != nil {
			return err
		}
		t := export.NewTranscript(contextID, entries)

		if outputFile == "" {
			return exporter.Export(t, cmd.OutOrStdout())
		}
		if err := writeTranscript(exporter, t, outputFile); err != nil {
			return &internal.ExportError{Format: format, Path: outputFile, Err: err}
		}
		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Exported %d message(s) to %s", len(t.Entries), outputFile))
		return nil
	},
}

func writeTranscript(exporter export.Exporter, t *export.Transcript, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := exporter.Export(t, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
}
