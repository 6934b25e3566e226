package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/merchant/internal/interpreter"
	"github.com/ppiankov/merchant/internal/model"
	"github.com/ppiankov/merchant/internal/session"
	"github.com/ppiankov/merchant/internal/worker"
)

var (
	listFile     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [file...]",
	Short: "Process many notes files in parallel",
	Long: `Batch runs each notes file in its own independent session:
- Files are read from arguments and/or a list file (one path per line)
- Sessions run in parallel with a configurable worker count
- Each file's answers are written to <output-dir>/<name>.out
- A summary.yaml report is written next to the transcripts

Example:
  merchant batch day1.txt day2.txt
  merchant batch --list notes.list --concurrency 4 --output-dir ./answers
  merchant batch *.txt --rate 2 --timeout 1m`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&listFile, "list", "", "file listing notes paths, one per line")
	batchCmd.Flags().Int("concurrency", runtime.NumCPU(), "number of concurrent sessions")
	batchCmd.Flags().String("output-dir", "./merchant-transcripts", "output directory for transcripts")
	batchCmd.Flags().Float64("rate", 0, "max sessions started per second (0 = unlimited)")
	batchCmd.Flags().Int("burst", 5, "session start burst size")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("output.dir", batchCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("rate_limiting.sessions_per_second", batchCmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("rate_limiting.burst_size", batchCmd.Flags().Lookup("burst"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && listFile == "" {
		return fmt.Errorf("no notes files given: pass file arguments or --list")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	sources := append([]string{}, args...)
	if listFile != "" {
		listed, err := worker.ReadSourcesFromFile(listFile)
		if err != nil {
			return fmt.Errorf("read list file: %w", err)
		}
		sources = append(sources, listed...)
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "  Merchant Batch Processing\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "  Notes files:  %d\n", len(sources))
	fmt.Fprintf(errOut, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(errOut, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(errOut, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(errOut, "\n")

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One cache for all sessions; conversions do not depend on session state
	shared := interpreter.WithCache(newCache(cfg.Cache))
	factory := func() *session.Session {
		return session.New(cfg.Session, logger, shared)
	}

	processor := worker.NewBatchProcessor(
		factory,
		cfg.Concurrency.Workers,
		cfg.Output.Dir,
		cfg.RateLimiting.SessionsPerSecond,
		cfg.RateLimiting.BurstSize,
	)

	results := processor.ProcessFiles(ctx, sources)

	summary := model.BatchSummary{GeneratedAt: time.Now().UTC()}
	for _, result := range results {
		summary.Sessions = append(summary.Sessions, result.Summary())

		if result.Error != nil {
			fmt.Fprintf(errOut, "✗ %s: %v\n", result.Source, result.Error)
			logger.Warn("session failed",
				zap.String("source", result.Source),
				zap.String("session", result.SessionID),
				zap.Error(result.Error),
			)
			continue
		}

		fmt.Fprintf(errOut, "✓ %s → %s (%d answers, %d unrecognized)\n",
			result.Source, result.Transcript, result.Stats.Replies, result.Stats.Unrecognized)
	}
	summary.Tally()

	summaryPath := filepath.Join(cfg.Output.Dir, "summary.yaml")
	if err := writeSummary(summaryPath, &summary); err != nil {
		return err
	}

	// Summary
	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "  Batch Complete\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "  Total:     %d files\n", summary.Total)
	fmt.Fprintf(errOut, "  Success:   %d\n", summary.Succeeded)
	fmt.Fprintf(errOut, "  Failures:  %d\n", summary.Failed)
	fmt.Fprintf(errOut, "  Summary:   %s\n", summaryPath)
	fmt.Fprintf(errOut, "\n")

	if dropped := len(sources) - len(results); dropped > 0 {
		return fmt.Errorf("batch stopped early: %d files not processed: %w", dropped, ctx.Err())
	}
	return nil
}

func writeSummary(path string, summary *model.BatchSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
