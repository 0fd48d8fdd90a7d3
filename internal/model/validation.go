package model

import "time"

// Component names used by the validation pipeline, in execution order.
const (
	ComponentRetrieval = "retrieval"
	ComponentReasoning = "reasoning"
	ComponentResponse  = "response"
)

// ValidationResult is the outcome of one component validator.
type ValidationResult struct {
	Component  string             `json:"component"`
	Valid      bool               `json:"valid"`
	Confidence float64            `json:"confidence"` // In [0,1]
	Errors     []string           `json:"errors"`
	Warnings   []string           `json:"warnings"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	ElapsedMS  int64              `json:"elapsed_ms"`
}

// PipelineResult aggregates the component validators for one invocation.
type PipelineResult struct {
	Components        []ValidationResult `json:"components"`
	OverallValid      bool               `json:"overall_valid"`
	OverallConfidence float64            `json:"overall_confidence"`
	CanProceed        bool               `json:"can_proceed"`
	Errors            []string           `json:"errors"`
	TotalElapsedMS    int64              `json:"total_elapsed_ms"`
}

// AuditEntry records one failed pipeline run.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Result    PipelineResult `json:"result"`
}

// PipelineStats summarizes the audit log. Only failed runs are ever logged,
// so LoggedRuns and FailedRuns count the same population; both are kept so
// the semantics stay explicit at the call site.
type PipelineStats struct {
	LoggedRuns        int            `json:"logged_runs"`
	FailedRuns        int            `json:"failed_runs"`
	AvgProcessingMS   float64        `json:"avg_processing_ms"`
	ComponentFailures map[string]int `json:"component_failures"`
}
