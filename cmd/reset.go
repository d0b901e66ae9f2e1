package cmd

import (
	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the conversation history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		err = internal.ShowProgress(ctx, "Resetting", func() error {
			return app.ctrl.Reset(ctx)
		})
		if err != nil {
			return err
		}
		app.saveTranscript()

		internal.PrintSuccess(cmd.OutOrStdout(), "Chat history reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
