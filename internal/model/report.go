package model

import "time"

// Report is the complete evaluation of one search trace.
type Report struct {
	Session     string         `json:"session,omitempty"` // Snapshot-store session id
	Query       string         `json:"query"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
	ResultCount int            `json:"result_count"`
	Sources     []string       `json:"sources,omitempty"` // Result URLs; doubles as the summary citation allowlist
	Score       QualityScore   `json:"score"`
	Metrics     QualityMetrics `json:"metrics"`
	Validation  PipelineResult `json:"validation"`
	LinkChecks  []LinkCheck    `json:"link_checks,omitempty"`
	LLM         *LLMSummary    `json:"llm,omitempty"` // Optional summary; never affects scores
}

// LinkCheck is the outcome of probing a single result URL.
type LinkCheck struct {
	URL           string     `json:"url"`
	IsAccessible  bool       `json:"is_accessible"`
	StatusCode    int        `json:"status_code,omitempty"`
	LastModified  *time.Time `json:"last_modified,omitempty"`
	AgeDays       *int       `json:"age_days,omitempty"` // Days since Last-Modified
	IsDead        bool       `json:"is_dead"`            // 404, 410, or unreachable
	RedirectURL   string     `json:"redirect_url,omitempty"`
	SkippedRobots bool       `json:"skipped_robots,omitempty"` // robots.txt disallowed the probe
	Error         string     `json:"error,omitempty"`
}

// LLMSummary is an optional model-generated summary of the report.
// It is clearly separated from scoring and never feeds back into it.
type LLMSummary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	SummaryMD      string   `json:"summary_md,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
