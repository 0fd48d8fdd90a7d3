package llm

import (
	"context"
	"fmt"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the report with strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the quality evaluation report to summarize
	Report model.Report

	// SourceURLs is the STRICT allowlist of URLs the LLM can cite.
	// This prevents hallucination - LLM cannot reference any URL not in this list
	SourceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// CitedURLs are the URLs the LLM actually cited (for verification)
	CitedURLs []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictEvidence enforces URL allowlist (should always be true)
	StrictEvidence bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Model:          "",
		Timeout:        30,
		StrictEvidence: true, // CRITICAL: Always enforce
		MaxTokens:      1000,
	}
}

const systemPrompt = "You are a helpful assistant that summarizes search quality reports with strict adherence to source constraints."

// BuildPrompt constructs the default prompt for summarization with strict evidence mode
func BuildPrompt(report model.Report, sourceURLs []string) string {
	prompt := fmt.Sprintf(`You are summarizing a search quality report. The report measures how well a set of search results serves a query - it NEVER asserts whether the results are factually correct.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. If a quality signal is weak or missing, state that explicitly.
4. Focus on RESULT QUALITY, not truth. Use phrases like:
   - "Relevance to the query is high/low because..."
   - "The result set draws on N distinct sources..."
   - "Validation flagged..."
5. Never say "this answer is true" or "this answer is false" - only describe quality.

Report Summary:
- Query: %s
- Overall Quality: %.2f (relevance %.2f, diversity %.2f, freshness %.2f, consistency %.2f)
- Results Evaluated: %d
- Validation: %d/%d components passed, confidence %.2f
- Drift: %s (recommendation: %s)
`, joinURLs(sourceURLs), report.Query,
		report.Score.Overall, report.Score.Relevance, report.Score.Diversity,
		report.Score.Freshness, report.Score.Consistency,
		report.ResultCount,
		countValid(report.Validation.Components), len(report.Validation.Components),
		report.Validation.OverallConfidence,
		report.Metrics.DriftAnalysis.Details, report.Metrics.DriftAnalysis.Recommendation)

	if len(report.LinkChecks) > 0 {
		prompt += fmt.Sprintf("- Links Probed: %d accessible, %d dead/inaccessible\n",
			countAccessible(report.LinkChecks), countDead(report.LinkChecks))
	}

	// Surface the noisiest validation findings
	added := 0
	for _, comp := range report.Validation.Components {
		for _, e := range comp.Errors {
			if added >= 3 {
				break
			}
			prompt += fmt.Sprintf("- %s error: %s\n", comp.Component, e)
			added++
		}
	}

	prompt += "\nProvide a 3-4 sentence summary focusing on result quality, not truth."

	return prompt
}

// Helper functions

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No source URLs available)"
	}
	result := ""
	for i, url := range urls {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", url)
	}
	return result
}

func countValid(components []model.ValidationResult) int {
	count := 0
	for _, c := range components {
		if c.Valid {
			count++
		}
	}
	return count
}

func countAccessible(checks []model.LinkCheck) int {
	count := 0
	for _, c := range checks {
		if c.IsAccessible {
			count++
		}
	}
	return count
}

func countDead(checks []model.LinkCheck) int {
	count := 0
	for _, c := range checks {
		if c.IsDead {
			count++
		}
	}
	return count
}
