package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
	"github.com/MikePfunk28/agentic-search-sub000/internal/pipeline"
	"github.com/MikePfunk28/agentic-search-sub000/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noFooter is defined in score.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list>",
	Short: "Evaluate multiple trace files in parallel",
	Long: `Batch evaluates many search traces concurrently:
- Take a directory of trace JSON files, or a list file of paths (one per line)
- Evaluate traces in parallel with a configurable worker count
- Record every score into one shared session history
- Generate individual reports per trace

Example:
  agentic-search batch ./traces/
  agentic-search batch traces.txt --concurrency 8 --output-dir ./reports
  agentic-search batch traces.txt --session my-agent --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", model.DefaultConfig().Concurrency.BatchWorkers, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./asearch-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared evaluation flags
	batchCmd.Flags().StringVar(&session, "session", "", "session name for persistent score history")
	batchCmd.Flags().BoolVar(&strictMode, "strict", false, "halt each validation after the first failing component")
	batchCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.6, "minimum overall confidence to proceed")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the session snapshot store")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Evaluation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if session != "" {
		fmt.Fprintf(os.Stderr, "  Session:      %s\n", session)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Validation.StrictMode = strictMode
	cfg.Validation.MinConfidenceThreshold = minConfidence
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.BatchWorkers = concurrency
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One evaluator shared by all workers: every trace's score lands in
	// the same history, so drift analysis spans the whole batch.
	eval, err := pipeline.NewEvaluator(cfg)
	if err != nil {
		return err
	}
	if session != "" {
		if err := eval.UseSession(session); err != nil {
			return err
		}
	}

	processor := worker.NewBatchProcessor(eval, concurrency)

	var results []*worker.EvalResult
	if info, statErr := os.Stat(file); statErr == nil && info.IsDir() {
		fmt.Fprintf(os.Stderr, "⚙️  Collecting trace files from directory...\n")
		paths, globErr := filepath.Glob(filepath.Join(file, "*.json"))
		if globErr != nil {
			return fmt.Errorf("scan directory: %w", globErr)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no trace files (*.json) found in %s", file)
		}
		results = processor.ProcessFiles(ctx, paths)
	} else {
		fmt.Fprintf(os.Stderr, "⚙️  Reading trace paths from file...\n")
		results, err = processor.ProcessList(ctx, file)
		if err != nil {
			return fmt.Errorf("process file: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d traces\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0
	blockedCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++
		if !result.Report.Validation.CanProceed {
			blockedCount++
		}

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (quality %.2f, proceed %t)\n",
			result.Path, result.Report.Score.Overall, result.Report.Validation.CanProceed)
	}

	if session != "" {
		if err := eval.SaveSession(); err != nil {
			return err
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d traces\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Blocked:   %d\n", blockedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)

	stats := eval.Validators().Statistics()
	if stats.LoggedRuns > 0 {
		fmt.Fprintf(os.Stderr, "  Audit:     %d failed runs logged (avg %.1f ms)\n", stats.FailedRuns, stats.AvgProcessingMS)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename turns a trace path into a safe report file stem.
func sanitizeFilename(s string) string {
	s = filepath.Base(s)
	s = strings.TrimSuffix(s, filepath.Ext(s))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "trace"
	}

	return s
}
