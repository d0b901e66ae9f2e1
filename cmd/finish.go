package cmd

import (
	"fmt"

	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

// finishCmd represents the finish command
var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "End the session on the service and in this tab",
	Long: `End the session. The service forgets the conversation and this tab
forgets the session; log in again to start over. If the service cannot be
reached the session is kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		var view internal.View
		err = internal.ShowProgress(ctx, "Finishing", func() error {
			var err error
			view, err = app.ctrl.Finish(ctx)
			return err
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		internal.PrintSuccess(out, "Chat finished")
		internal.LogDebug("Navigating to %s", app.ctrl.Guard().Enter(view))
		_, _ = fmt.Fprintln(out, idStyle.Render("Next: chat-session login"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(finishCmd)
}
