package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
	"github.com/MikePfunk28/agentic-search-sub000/internal/validate"
)

// Renderer writes reports as JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Search Quality Report\n\n")
	b.WriteString(fmt.Sprintf("- Query: %s\n", report.Query))
	if report.Session != "" {
		b.WriteString(fmt.Sprintf("- Session: %s\n", report.Session))
	}
	b.WriteString(fmt.Sprintf("- Evaluated: %s\n", report.EvaluatedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString(fmt.Sprintf("- Results: %d\n\n", report.ResultCount))

	b.WriteString("## Quality Score\n\n")
	b.WriteString("| Dimension | Score |\n")
	b.WriteString("|-----------|-------|\n")
	b.WriteString(fmt.Sprintf("| **Overall** | **%.2f** |\n", report.Score.Overall))
	b.WriteString(fmt.Sprintf("| Relevance | %.2f |\n", report.Score.Relevance))
	b.WriteString(fmt.Sprintf("| Diversity | %.2f |\n", report.Score.Diversity))
	b.WriteString(fmt.Sprintf("| Freshness | %.2f |\n", report.Score.Freshness))
	b.WriteString(fmt.Sprintf("| Consistency | %.2f |\n\n", report.Score.Consistency))

	b.WriteString("## Drift\n\n")
	da := report.Metrics.DriftAnalysis
	b.WriteString(fmt.Sprintf("- Historical average: %.2f\n", report.Metrics.HistoricalAverage))
	b.WriteString(fmt.Sprintf("- Trend: %s\n", report.Metrics.RecentTrend))
	b.WriteString(fmt.Sprintf("- Drifting: %t (magnitude %.2f, confidence %.2f)\n", da.IsDrifting, da.DriftMagnitude, da.Confidence))
	b.WriteString(fmt.Sprintf("- Recommendation: %s\n", da.Recommendation))
	b.WriteString(fmt.Sprintf("- %s\n\n", da.Details))

	b.WriteString("## Validation\n\n")
	v := report.Validation
	b.WriteString(fmt.Sprintf("- Overall valid: %t\n", v.OverallValid))
	b.WriteString(fmt.Sprintf("- Overall confidence: %.2f\n", v.OverallConfidence))
	b.WriteString(fmt.Sprintf("- Can proceed: %t\n\n", v.CanProceed))
	for _, comp := range v.Components {
		b.WriteString(fmt.Sprintf("### %s\n\n", comp.Component))
		b.WriteString(fmt.Sprintf("- Valid: %t (confidence %.2f)\n", comp.Valid, comp.Confidence))
		for _, e := range comp.Errors {
			b.WriteString(fmt.Sprintf("- Error: %s\n", e))
		}
		for _, w := range comp.Warnings {
			b.WriteString(fmt.Sprintf("- Warning: %s\n", w))
		}
		b.WriteString("\n")
	}

	if len(report.LinkChecks) > 0 {
		b.WriteString("## Link Checks\n\n")
		for _, c := range report.LinkChecks {
			status := "ok"
			switch {
			case c.SkippedRobots:
				status = "skipped (robots.txt)"
			case c.IsDead:
				status = "dead"
			case !c.IsAccessible:
				status = "inaccessible"
			}
			b.WriteString(fmt.Sprintf("- %s: %s", c.URL, status))
			if c.StatusCode != 0 {
				b.WriteString(fmt.Sprintf(" (HTTP %d)", c.StatusCode))
			}
			b.WriteString("\n")
		}
		for _, w := range validate.LinkWarnings(report.LinkChecks) {
			b.WriteString(fmt.Sprintf("- Warning: %s\n", w))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("Scores measure how well the result set serves the query; they never assert factual correctness.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderLLMMarkdown writes a pre-rendered LLM summary to its own file,
// kept separate from the deterministic report.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if markdown == "" {
		return nil
	}
	return os.WriteFile(path, []byte(markdown), 0o644)
}

// RenderSummary prints a one-screen summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\nQuery: %s\n", report.Query)
	fmt.Printf("Overall quality: %.2f (relevance %.2f, diversity %.2f, freshness %.2f, consistency %.2f)\n",
		report.Score.Overall, report.Score.Relevance, report.Score.Diversity,
		report.Score.Freshness, report.Score.Consistency)
	fmt.Printf("Validation: valid=%t confidence=%.2f proceed=%t\n",
		report.Validation.OverallValid, report.Validation.OverallConfidence, report.Validation.CanProceed)
	fmt.Printf("Drift: %s (%s)\n", report.Metrics.DriftAnalysis.Recommendation, report.Metrics.DriftAnalysis.Details)
	if report.LLM != nil && report.LLM.Enabled {
		fmt.Printf("LLM summary: %s/%s\n", report.LLM.Provider, report.LLM.Model)
	}
}
