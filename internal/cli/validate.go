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
	strictMode    bool
	minConfidence float64
	probeLinks    bool
	probeTimeout  time.Duration
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <trace.json>",
	Short: "Validate the retrieval, reasoning and response stages of a trace",
	Long: `Validate runs the full validation pipeline over one search trace:
- Retrieval: result structure, required fields, duplicate URLs
- Reasoning: chain continuity and per-step confidence
- Response: length, query coverage, source citations

The command exits non-zero when the trace cannot proceed under the
configured gates. In strict mode the pipeline halts at the first
component that fails validation.

Example:
  agentic-search validate trace.json
  agentic-search validate trace.json --strict
  agentic-search validate trace.json --min-confidence 0.7 --probe
  agentic-search validate trace.json --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	// Gate flags
	validateCmd.Flags().BoolVar(&strictMode, "strict", false, "halt after the first failing component")
	validateCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.6, "minimum overall confidence to proceed")

	// Probe flags
	validateCmd.Flags().BoolVar(&probeLinks, "probe", false, "probe result URLs for liveness")
	validateCmd.Flags().DurationVar(&probeTimeout, "probe-timeout", 10*time.Second, "per-request probe timeout")

	// Output flags
	validateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	validateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	validateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	validateCmd.Flags().StringVar(&session, "session", "", "session name for persistent score history")
	validateCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall evaluation timeout")

	// LLM flags
	validateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	validateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	validateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Validation.StrictMode = strictMode
	cfg.Validation.MinConfidenceThreshold = minConfidence
	cfg.Probe.Enabled = probeLinks
	cfg.Probe.Timeout = probeTimeout
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	eval, err := pipeline.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	if session != "" {
		if err := eval.UseSession(session); err != nil {
			return err
		}
	}

	report, err := eval.EvaluateFile(ctx, path)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	if session != "" {
		if err := eval.SaveSession(); err != nil {
			return err
		}
	}

	if err := eval.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if !report.Validation.CanProceed {
		if len(report.Validation.Errors) > 0 {
			return fmt.Errorf("validation gate failed: %s", report.Validation.Errors[0])
		}
		return fmt.Errorf("validation gate failed: confidence %.2f below threshold %.2f",
			report.Validation.OverallConfidence, minConfidence)
	}

	return nil
}

// configureLLM fills cfg.LLM from flags and provider environment variables.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.StrictEvidence = true // Always enforce

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
