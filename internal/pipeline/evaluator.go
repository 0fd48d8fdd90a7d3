package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/discriminator"
	"github.com/MikePfunk28/agentic-search-sub000/internal/llm"
	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
	"github.com/MikePfunk28/agentic-search-sub000/internal/normalize"
	"github.com/MikePfunk28/agentic-search-sub000/internal/store"
	"github.com/MikePfunk28/agentic-search-sub000/internal/validate"
)

// Evaluator orchestrates the complete evaluation of a search trace:
// normalization, quality scoring, drift analysis, validation, optional
// link probing and optional LLM summarization.
type Evaluator struct {
	disc       *discriminator.Discriminator
	validators *validate.Pipeline
	prober     *validate.Prober
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	snapshots  *store.SnapshotStore
	renderer   *Renderer
	config     *model.Config
	session    string
}

// NewEvaluator creates an evaluator with the given configuration.
func NewEvaluator(cfg *model.Config) (*Evaluator, error) {
	disc, err := discriminator.New(cfg.Discriminator)
	if err != nil {
		return nil, fmt.Errorf("discriminator: %w", err)
	}

	validators, err := validate.NewPipeline(cfg.Validation, disc.Calculator())
	if err != nil {
		return nil, fmt.Errorf("validation pipeline: %w", err)
	}

	var prober *validate.Prober
	if cfg.Probe.Enabled {
		prober = validate.NewProber(cfg.Probe)
	}

	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var snapshots *store.SnapshotStore
	if cfg.Cache.Enabled {
		snapshots, err = store.New(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("snapshot store: %w", err)
		}
	}

	return &Evaluator{
		disc:       disc,
		validators: validators,
		prober:     prober,
		summarizer: summarizer,
		snapshots:  snapshots,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// Discriminator exposes the underlying scorer, mainly for inspection.
func (e *Evaluator) Discriminator() *discriminator.Discriminator {
	return e.disc
}

// Validators exposes the validation pipeline for audit/statistics access.
func (e *Evaluator) Validators() *validate.Pipeline {
	return e.validators
}

// UseSession loads the named session's score history into the
// discriminator so drift analysis spans prior runs. Missing history is
// not an error; the session starts fresh.
func (e *Evaluator) UseSession(session string) error {
	e.session = session
	if e.snapshots == nil || session == "" {
		return nil
	}
	scores, err := e.snapshots.Load(session)
	if err != nil {
		return fmt.Errorf("load session %q: %w", session, err)
	}
	if len(scores) > 0 {
		e.disc.ImportHistory(scores)
	}
	return nil
}

// SaveSession persists the discriminator's score history for the
// active session. No-op without a session or snapshot store.
func (e *Evaluator) SaveSession() error {
	if e.snapshots == nil || e.session == "" {
		return nil
	}
	if err := e.snapshots.Save(e.session, e.disc.ExportHistory()); err != nil {
		return fmt.Errorf("save session %q: %w", e.session, err)
	}
	return nil
}

// LoadTrace reads a search trace from a JSON file.
func LoadTrace(path string) (*model.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	var trace model.Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return &trace, nil
}

// Evaluate runs the full evaluation over one trace and builds a report.
// The quality score is recorded into history before drift analysis, so
// each evaluation contributes to the session baseline.
func (e *Evaluator) Evaluate(ctx context.Context, trace model.Trace) (*model.Report, error) {
	// 1. Normalize text fields (strip HTML, collapse whitespace)
	trace = normalize.Trace(trace)

	// 2. Score quality and record into history
	score := e.disc.Score(trace.Query, trace.Results, trace.Feedback)

	// 3. Drift analysis over the recorded history
	metrics := e.disc.Metrics()

	// 4. Validate retrieval, reasoning and response
	validation := e.validators.Validate(trace)

	// 5. Build report (without probe results or LLM summary yet)
	report := &model.Report{
		Session:     e.session,
		Query:       trace.Query,
		EvaluatedAt: time.Now().UTC(),
		ResultCount: len(trace.Results),
		Sources:     sourceURLs(trace.Results),
		Score:       score,
		Metrics:     metrics,
		Validation:  validation,
	}

	// 6. Probe result links if enabled
	if e.prober != nil {
		report.LinkChecks = e.prober.Probe(ctx, trace.Results)
	}

	// 7. Generate LLM summary if enabled (AFTER scoring, never affects score)
	if e.summarizer != nil && e.summarizer.IsEnabled() {
		llmSummary, err := e.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			// Don't fail the evaluation, just warn
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			report.LLM = llmSummary
		}
	}

	return report, nil
}

// EvaluateFile loads a trace file and evaluates it. Satisfies the
// batch processor's Evaluator interface.
func (e *Evaluator) EvaluateFile(ctx context.Context, path string) (*model.Report, error) {
	trace, err := LoadTrace(path)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, *trace)
}

// RenderReport renders the report to the configured outputs and prints
// a summary to stdout.
func (e *Evaluator) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := e.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := e.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Render LLM summary to separate file if present
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		llmMarkdown := llm.RenderSeparateMarkdown(report.LLM)
		if err := e.renderer.RenderLLMMarkdown(llmMarkdown, llmMdPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Summary: %s\n", llmMdPath)
		}
	}

	e.renderer.RenderSummary(report)

	return nil
}

func sourceURLs(results []model.SearchResult) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, r := range results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		urls = append(urls, r.URL)
	}
	return urls
}
