package cmd

import (
	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget this tab's session without contacting the service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		if _, ok := app.ctrl.Session(); !ok {
			internal.PrintInfo(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		app.ctrl.Logout()
		internal.PrintSuccess(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
