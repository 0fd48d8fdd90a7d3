package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
	"github.com/MikePfunk28/agentic-search-sub000/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON  string
	outMD    string
	session  string
	timeout  time.Duration
	noCache  bool
	noFooter bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <trace.json>",
	Short: "Score a search trace and report quality metrics",
	Long: `Score evaluates one search trace to:
- Rate the result set on relevance, diversity, freshness and consistency
- Apply user feedback when the trace carries it
- Record the score into session history
- Analyze drift against the historical baseline

Example:
  agentic-search score trace.json
  agentic-search score trace.json --session my-agent --json report.json
  agentic-search score trace.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	// Output flags
	scoreCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scoreCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scoreCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Session flags
	scoreCmd.Flags().StringVar(&session, "session", "", "session name for persistent score history")
	scoreCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the session snapshot store")

	scoreCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall evaluation timeout")
}

func runScore(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	eval, err := pipeline.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	if session != "" {
		if err := eval.UseSession(session); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Session: %s (%d historical scores)\n", session, eval.Discriminator().HistoryLen())
		}
	}

	report, err := eval.EvaluateFile(ctx, path)
	if err != nil {
		return fmt.Errorf("score failed: %w", err)
	}

	if session != "" {
		if err := eval.SaveSession(); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d results\n", report.ResultCount)
		fmt.Fprintf(os.Stderr, "✓ History length: %d\n", eval.Discriminator().HistoryLen())
	}

	if err := eval.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
