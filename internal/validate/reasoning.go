package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

const (
	minStepOutputLen  = 10
	minStepConfidence = 0.5
	chainOverlapLen   = 50
)

// ReasoningValidator checks that the reasoning chain is well-formed and that
// each step builds on the previous one.
type ReasoningValidator struct{}

// NewReasoningValidator creates a reasoning validator.
func NewReasoningValidator() *ReasoningValidator {
	return &ReasoningValidator{}
}

// Validate checks the chain. Confidence is the mean of the per-step
// confidences; the gate is no errors AND confidence >= 0.6.
func (v *ReasoningValidator) Validate(steps []model.ReasoningStep) model.ValidationResult {
	start := time.Now()
	res := model.ValidationResult{
		Component: model.ComponentReasoning,
		Errors:    []string{},
		Warnings:  []string{},
	}

	if len(steps) == 0 {
		res.Errors = append(res.Errors, "no reasoning steps provided")
		res.ElapsedMS = time.Since(start).Milliseconds()
		return res
	}

	var confidenceSum float64
	for i, step := range steps {
		if step.Input == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("step %d has no input", i+1))
		}
		if step.Output == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("step %d has no output", i+1))
		} else if len(step.Output) < minStepOutputLen {
			res.Warnings = append(res.Warnings, fmt.Sprintf("step %d output is very short", i+1))
		}
		if step.Confidence < minStepConfidence {
			res.Warnings = append(res.Warnings, fmt.Sprintf("step %d has low confidence (%.2f)", i+1, step.Confidence))
		}

		// Crude chaining heuristic: the step's input should carry the start
		// of the previous step's output.
		if i > 0 {
			prev := steps[i-1].Output
			if len(prev) > chainOverlapLen {
				prev = prev[:chainOverlapLen]
			}
			if prev != "" && !strings.Contains(step.Input, prev) {
				res.Warnings = append(res.Warnings, fmt.Sprintf("step %d does not build on the previous step's output", i+1))
			}
		}

		confidenceSum += step.Confidence
	}

	res.Confidence = confidenceSum / float64(len(steps))
	res.Valid = len(res.Errors) == 0 && res.Confidence >= 0.6
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res
}
