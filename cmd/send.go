package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/spf13/cobra"
)

var sendReplyOnly bool

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message to the assistant",
	Long: `Send a message and print the conversation as the service now has it.
All arguments are joined with spaces into one message, which is sent as
typed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		err = internal.ShowProgress(ctx, "Sending", func() error {
			return app.ctrl.Send(ctx, text)
		})
		if err != nil {
			return err
		}
		app.saveTranscript()

		out := cmd.OutOrStdout()
		if sendReplyOnly {
			_, _ = fmt.Fprintln(out, app.ctrl.Conversation().Reply())
			return nil
		}
		printConversation(out, app.ctrl.Conversation().Entries())
		return nil
	},
}

// printConversation writes entries the way the chat view lists them
func printConversation(w io.Writer, entries []api.ConversationEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, idStyle.Render("No messages yet."))
		return
	}
	for i, e := range entries {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		switch e.Role {
		case api.RoleUser:
			_, _ = fmt.Fprintf(w, "%s %s\n", userStyle.Render("You:"), e.Content)
		case api.RoleSystem:
			_, _ = fmt.Fprintln(w, systemStyle.Render(e.Content))
		default:
			_, _ = fmt.Fprintf(w, "%s %s\n", assistantStyle.Render("Assistant:"), e.Content)
		}
	}
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendReplyOnly, "reply-only", false, "Print only the assistant's reply")
}
