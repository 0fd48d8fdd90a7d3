package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Summarizer orchestrates optional LLM summarization of quality reports.
// Summarization never affects scoring or validation - it only annotates.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration.
// An empty provider name yields a disabled (but valid) summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces an LLM summary of the report.
// Failures degrade gracefully: the returned summary carries warnings
// instead of the call returning an error, so evaluation never breaks
// because a model endpoint is down.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	// Disabled - no summary, no error
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:        false,
			Provider:       s.provider.Name(),
			StrictEvidence: s.config.StrictEvidence,
			Warnings: []string{
				fmt.Sprintf("LLM provider %s not available - check API key and connectivity", s.provider.Name()),
			},
		}, nil
	}

	req := SummarizeRequest{
		Report:     report,
		SourceURLs: report.Sources,
		Model:      s.config.Model,
		MaxTokens:  s.config.MaxTokens,
	}

	resp, err := s.provider.Summarize(ctx, req)
	if err != nil {
		// Graceful degradation: record the failure, keep the report
		return &model.LLMSummary{
			Enabled:        true,
			Provider:       s.provider.Name(),
			Model:          s.config.Model,
			StrictEvidence: s.config.StrictEvidence,
			Warnings: []string{
				fmt.Sprintf("summary generation failed: %v", err),
			},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:        true,
		Provider:       s.provider.Name(),
		Model:          resp.Model,
		StrictEvidence: s.config.StrictEvidence,
		SummaryMD:      resp.Summary,
		Warnings: []string{
			fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
			fmt.Sprintf("Verified %d citations against the source allowlist", len(resp.CitedURLs)),
		},
	}, nil
}

// RenderSeparateMarkdown renders the summary as a clearly-delimited
// markdown section, kept apart from the deterministic report body.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder

	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> **GENERATED CONTENT** - produced by a language model, not by the scoring pipeline.\n\n")
	b.WriteString(fmt.Sprintf("- Provider: %s\n", summary.Provider))
	b.WriteString(fmt.Sprintf("- Model: %s\n", summary.Model))
	b.WriteString(fmt.Sprintf("- Strict Evidence Mode: %t\n\n", summary.StrictEvidence))

	if summary.SummaryMD != "" {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	} else {
		b.WriteString("No summary generated.\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	b.WriteString("\nAll scores, validation verdicts, and drift analysis above were determined independently of this summary.\n")

	return b.String()
}
