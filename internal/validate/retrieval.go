package validate

import (
	"fmt"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/discriminator"
	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// RetrievalValidator checks structural well-formedness of a retrieval batch
// and derives its confidence from the discriminator's sub-scores.
type RetrievalValidator struct {
	calc *discriminator.Calculator
}

// NewRetrievalValidator creates a retrieval validator. A nil calculator gets
// a fresh one.
func NewRetrievalValidator(calc *discriminator.Calculator) *RetrievalValidator {
	if calc == nil {
		calc = discriminator.NewCalculator()
	}
	return &RetrievalValidator{calc: calc}
}

// Validate checks the batch. An empty batch is the only immediate hard fail;
// all other findings flow into errors/warnings and the final gate
// (no errors AND confidence >= 0.5).
func (v *RetrievalValidator) Validate(query string, results []model.SearchResult) model.ValidationResult {
	start := time.Now()
	res := model.ValidationResult{
		Component: model.ComponentRetrieval,
		Errors:    []string{},
		Warnings:  []string{},
	}

	if len(results) == 0 {
		res.Errors = append(res.Errors, "no search results returned")
		res.ElapsedMS = time.Since(start).Milliseconds()
		return res
	}

	seen := make(map[string]bool)
	for i, r := range results {
		if r.Title == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("result %d has no title", i))
		}
		if r.Snippet == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("result %d has no snippet", i))
		}
		if r.URL == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("result %d has no URL", i))
			continue
		}
		if seen[r.URL] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate URL across results: %s", r.URL))
		}
		seen[r.URL] = true
	}

	score := v.calc.Compute(query, results)
	res.Metrics = map[string]float64{
		"relevance":   score.Relevance,
		"diversity":   score.Diversity,
		"freshness":   score.Freshness,
		"consistency": score.Consistency,
	}
	res.Confidence = score.Overall
	res.Valid = len(res.Errors) == 0 && res.Confidence >= 0.5
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res
}
