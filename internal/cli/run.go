package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Process a notes file and print the answers",
	Long: `Run reads a notes file (or standard input when the file is "-") and
writes one answer per question to standard output.

Example:
  merchant run notes.txt
  merchant run notes.txt --echo
  cat notes.txt | merchant run -`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if path := args[0]; path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open notes: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	stats, err := runSession(context.Background(), cfg, in, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("run session: %w", err)
	}

	logger.Debug("notes processed",
		zap.String("source", args[0]),
		zap.Int("lines", stats.Lines),
		zap.Int("replies", stats.Replies),
		zap.Int("unrecognized", stats.Unrecognized),
	)
	return nil
}
