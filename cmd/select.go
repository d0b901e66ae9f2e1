package cmd

import (
	"fmt"

	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select <context-id>",
	Short: "Start a conversation about a context",
	Long: `Bind this tab's session to a context. Use 'chat-session contexts' to
see the available IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		err = internal.ShowProgress(ctx, "Selecting "+args[0], func() error {
			_, err := app.ctrl.SelectContext(ctx, args[0])
			return err
		})
		if err != nil {
			return err
		}
		app.saveTranscript()

		out := cmd.OutOrStdout()
		internal.PrintSuccess(out, fmt.Sprintf("Selected %s", args[0]))
		_, _ = fmt.Fprintln(out, idStyle.Render(`Next: chat-session send "your message"`))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
