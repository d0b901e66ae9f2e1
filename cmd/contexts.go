package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/spf13/cobra"
)

// contextsCmd represents the contexts command
var contextsCmd = &cobra.Command{
	Use:     "contexts",
	Aliases: []string{"users"},
	Short:   "List the contexts a conversation can be about",
	Long:    `List the contexts offered by the service. Requires a session in this tab.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		var contexts []api.UserContext
		err = internal.ShowProgress(ctx, "Loading contexts", func() error {
			var err error
			contexts, err = app.ctrl.Contexts(ctx)
			return err
		})
		if err != nil {
			return err
		}

		sess, _ := app.ctrl.Session()
		return displayContexts(cmd, contexts, sess.ContextID)
	},
}

func displayContexts(cmd *cobra.Command, contexts []api.UserContext, selected string) error {
	out := cmd.OutOrStdout()
	if len(contexts) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("No contexts available"))
		return nil
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Found %d context(s)", len(contexts))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Company")+"\t"+titleStyle.Render("Company name")+"\t"+titleStyle.Render("Resources")+"\t")
	for _, c := range contexts {
		id := c.ID
		if c.ID == selected {
			id = "* " + id
		}
		_, _ = fmt.Fprintln(w, idStyle.Render(id)+"\t"+c.Name+"\t"+c.CompanyID+"\t"+c.CompanyName+"\t"+countStyle.Render(strconv.Itoa(c.ResourceCount))+"\t")
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("Tip: chat-session select <id>"))
	return nil
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}
