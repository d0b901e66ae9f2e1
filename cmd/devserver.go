package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/iksnae/chat-session/internal/devserver"
	"github.com/spf13/cobra"
)

var (
	devAddr         string
	devContextsFile string
	devUser         string
	devPassword     string
)

// devserverCmd represents the devserver command
var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local chat service for development",
	Long: `Run a local stand-in for the chat service. It accepts one demo user,
serves contexts from a YAML file (or a built-in list) and answers every
message with an echo.

Contexts file format:
  contexts:
    - user_id: u1
      user_name: Taro Yamada
      company_id: C001
      company_name: ABC Construction
      machine_count: 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []devserver.Option{
			devserver.WithCredentials(api.Credentials{UserID: devUser, Password: devPassword}),
			devserver.WithLogger(internal.Logger()),
		}
		if devContextsFile != "" {
			contexts, err := devserver.LoadContexts(devContextsFile)
			if err != nil {
				return err
			}
			opts = append(opts, devserver.WithContexts(contexts))
		}
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:              devAddr,
			Handler:           devserver.New(opts...).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		internal.PrintInfo(cmd.OutOrStdout(), fmt.Sprintf("Chat service listening on %s (login %s/%s)", devAddr, devUser, devPassword))

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		internal.LogInfo("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(devserverCmd)
	devserverCmd.Flags().StringVar(&devAddr, "addr", ":5000", "Listen address")
	devserverCmd.Flags().StringVar(&devContextsFile, "contexts", "", "YAML file with the contexts to serve")
	devserverCmd.Flags().StringVar(&devUser, "user", "test", "Demo user ID")
	devserverCmd.Flags().StringVar(&devPassword, "password", "test", "Demo password")
}
