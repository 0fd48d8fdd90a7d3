// Package validate gates pipeline-stage outputs: it checks retrieval batches,
// reasoning chains, and final responses independently, aggregates their
// verdicts against a shared confidence threshold, and keeps an audit log of
// failed runs.
package validate

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikePfunk28/agentic-search-sub000/internal/discriminator"
	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Pipeline runs the component validators in fixed order (retrieval,
// reasoning, response) over one search trace.
type Pipeline struct {
	cfg       model.ValidationConfig
	retrieval *RetrievalValidator
	reasoning *ReasoningValidator
	response  *ResponseValidator

	mu    sync.Mutex
	audit []model.AuditEntry
}

// NewPipeline creates a pipeline, rejecting invalid configurations. The
// calculator may be shared with a discriminator instance; nil gets a fresh
// one.
func NewPipeline(cfg model.ValidationConfig, calc *discriminator.Calculator) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation config: %w", err)
	}
	return &Pipeline{
		cfg:       cfg,
		retrieval: NewRetrievalValidator(calc),
		reasoning: NewReasoningValidator(),
		response:  NewResponseValidator(cfg.GateResponseConfidence),
	}, nil
}

// Validate runs the component validators over the trace. In strict mode the
// pipeline halts after the first invalid component; otherwise all three run
// regardless of individual failures. A failed validation is a normal data
// outcome, never fatal.
func (p *Pipeline) Validate(trace model.Trace) model.PipelineResult {
	start := time.Now()
	result := model.PipelineResult{Errors: []string{}}

	components := []struct {
		name string
		run  func() model.ValidationResult
	}{
		{model.ComponentRetrieval, func() model.ValidationResult {
			return p.retrieval.Validate(trace.Query, trace.Results)
		}},
		{model.ComponentReasoning, func() model.ValidationResult {
			return p.reasoning.Validate(trace.ReasoningSteps)
		}},
		{model.ComponentResponse, func() model.ValidationResult {
			return p.response.Validate(trace.Query, trace.FinalResponse, trace.Results)
		}},
	}

	for _, c := range components {
		cr := runComponent(c.name, c.run)
		result.Components = append(result.Components, cr)
		result.Errors = append(result.Errors, cr.Errors...)
		if p.cfg.StrictMode && !cr.Valid {
			result.Errors = append(result.Errors, fmt.Sprintf("strict mode: halted after %s failed validation", c.name))
			break
		}
	}

	overallValid := true
	var confidenceSum float64
	for _, cr := range result.Components {
		if !cr.Valid {
			overallValid = false
		}
		confidenceSum += cr.Confidence
	}
	result.OverallValid = overallValid
	result.OverallConfidence = confidenceSum / float64(len(result.Components))
	result.CanProceed = overallValid ||
		(!p.cfg.StrictMode && result.OverallConfidence >= p.cfg.MinConfidenceThreshold)
	result.TotalElapsedMS = time.Since(start).Milliseconds()

	if !overallValid && p.cfg.EnableLogging {
		p.logFailure(result)
	}

	return result
}

// runComponent converts a validator panic into a failed result with zero
// confidence, keeping the host process alive.
func runComponent(name string, run func() model.ValidationResult) (out model.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			out = model.ValidationResult{
				Component: name,
				Errors:    []string{fmt.Sprintf("%s validation error: %v", name, r)},
				Warnings:  []string{},
			}
		}
	}()
	return run()
}

// logFailure appends to the audit ring, evicting the oldest entries past the
// configured cap.
func (p *Pipeline) logFailure(result model.PipelineResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.audit = append(p.audit, model.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Result:    result,
	})
	if len(p.audit) > p.cfg.AuditLogCap {
		p.audit = append([]model.AuditEntry(nil), p.audit[len(p.audit)-p.cfg.AuditLogCap:]...)
	}
}

// AuditLog returns a copy of the logged failures, oldest first.
func (p *Pipeline) AuditLog() []model.AuditEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.AuditEntry(nil), p.audit...)
}

// ClearAuditLog drops all logged failures.
func (p *Pipeline) ClearAuditLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.audit = nil
}

// Statistics scans the audit log. Only failed runs are ever logged, so
// LoggedRuns counts failures, not every validation performed.
func (p *Pipeline) Statistics() model.PipelineStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := model.PipelineStats{ComponentFailures: make(map[string]int)}
	var totalMS int64
	for _, entry := range p.audit {
		stats.LoggedRuns++
		if !entry.Result.OverallValid {
			stats.FailedRuns++
		}
		totalMS += entry.Result.TotalElapsedMS
		for _, c := range entry.Result.Components {
			if !c.Valid {
				stats.ComponentFailures[c.Component]++
			}
		}
	}
	if stats.LoggedRuns > 0 {
		stats.AvgProcessingMS = float64(totalMS) / float64(stats.LoggedRuns)
	}
	return stats
}
