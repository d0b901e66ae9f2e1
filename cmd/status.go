package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show this tab's session state",
	Long: `Show the lifecycle state of this tab's session and the view it would
open: login, context selection or chat.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		out := cmd.OutOrStdout()
		sess, ok := app.ctrl.Session()
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("State:"), app.ctrl.State())
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("View: "), app.ctrl.CurrentView())
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Tab:  "), idStyle.Render(app.store.TabKey()))
		_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Server:"), app.client.BaseURL())
		if ok && sess.ContextID != "" {
			_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Context:"), sess.ContextID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
