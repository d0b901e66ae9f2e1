package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUser     string
	loginPassword string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the chat service",
	Long: `Log in with a user ID and password. Missing credentials are prompted
for; the password is not echoed on a terminal.

The session is stored for this terminal tab only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		creds, err := readCredentials(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		err = internal.ShowProgress(ctx, "Logging in", func() error {
			_, err := app.ctrl.Login(ctx, creds)
			return err
		})
		if err != nil {
			return err
		}
		app.saveTranscript()

		out := cmd.OutOrStdout()
		internal.PrintSuccess(out, fmt.Sprintf("Logged in as %s", creds.UserID))
		_, _ = fmt.Fprintln(out, idStyle.Render("Next: chat-session contexts"))
		return nil
	},
}

// readCredentials takes flags first and prompts for whatever is missing
func readCredentials(cmd *cobra.Command) (api.Credentials, error) {
	creds := api.Credentials{UserID: loginUser, Password: loginPassword}
	in := bufio.NewReader(cmd.InOrStdin())
	prompt := cmd.ErrOrStderr()

	if creds.UserID == "" {
		_, _ = fmt.Fprint(prompt, "User ID: ")
		line, err := readLine(in)
		if err != nil {
			return creds, fmt.Errorf("failed to read user ID: %w", err)
		}
		creds.UserID = line
	}

	if !cmd.Flags().Changed("password") {
		_, _ = fmt.Fprint(prompt, "Password: ")
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			pw, err := term.ReadPassword(int(f.Fd()))
			_, _ = fmt.Fprintln(prompt)
			if err != nil {
				return creds, fmt.Errorf("failed to read password: %w", err)
			}
			creds.Password = string(pw)
		} else {
			line, err := readLine(in)
			if err != nil {
				return creds, fmt.Errorf("failed to read password: %w", err)
			}
			creds.Password = line
		}
	}
	return creds, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User ID")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted for when omitted)")
}
