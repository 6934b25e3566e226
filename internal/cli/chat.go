package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/merchant/internal/interpreter"
	"github.com/ppiankov/merchant/internal/model"
	"github.com/ppiankov/merchant/internal/session"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session (default)",
	Long: `Chat reads notes from standard input one line at a time and answers
each question as soon as it is asked.

The session ends at end of input, on an empty line, or on a line that
reads "stop" (any case).`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, "Enter your notes, one per line. An empty line or \"stop\" ends the session.")
	fmt.Fprintln(errOut)

	_, err = runSession(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// runSession runs one session over in and out with settings from cfg
func runSession(ctx context.Context, cfg *model.Config, in io.Reader, out io.Writer) (session.Stats, error) {
	sess := session.New(cfg.Session, logger, interpreter.WithCache(newCache(cfg.Cache)))
	return sess.Run(ctx, in, out)
}
