// Package discriminator scores search-result batches against queries and
// tracks a bounded score history per session, from which it derives drift
// and trend signals used to judge the retrieval strategy.
package discriminator

import (
	"fmt"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Discriminator ties the calculator, history, and analyzers together for one
// logical session. Construct one per session and pass it explicitly; there is
// no process-wide instance.
type Discriminator struct {
	cfg      model.DiscriminatorConfig
	calc     *Calculator
	history  *History
	analyzer *Analyzer
}

// New creates a discriminator, rejecting invalid configurations.
func New(cfg model.DiscriminatorConfig) (*Discriminator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("discriminator config: %w", err)
	}
	return &Discriminator{
		cfg:      cfg,
		calc:     NewCalculator(),
		history:  NewHistory(cfg.HistoricalWindow),
		analyzer: NewAnalyzer(cfg),
	}, nil
}

// Compute scores a batch (including feedback adjustment) without touching
// history. Useful for speculative what-if scoring.
func (d *Discriminator) Compute(query string, results []model.SearchResult, feedback *model.UserFeedback) model.QualityScore {
	score := d.calc.Compute(query, results)
	return d.calc.ApplyFeedback(score, feedback)
}

// Record appends a previously computed score to the session history.
func (d *Discriminator) Record(score model.QualityScore) {
	d.history.Append(score)
}

// Score computes, applies feedback, and records in one step. This is the
// common path: scoring a completed retrieval batch always feeds the history.
func (d *Discriminator) Score(query string, results []model.SearchResult, feedback *model.UserFeedback) model.QualityScore {
	score := d.Compute(query, results, feedback)
	d.Record(score)
	return score
}

// Calculator exposes the pure sub-score calculator, e.g. for validators that
// need the component scores without recording anything.
func (d *Discriminator) Calculator() *Calculator {
	return d.calc
}

// AnalyzeDrift recomputes drift over the current history.
func (d *Discriminator) AnalyzeDrift() model.DriftAnalysis {
	return d.analyzer.Analyze(d.history.All())
}

// Metrics returns a read-only snapshot: the latest score, the all-time
// history mean, trend classification, and full drift analysis.
func (d *Discriminator) Metrics() model.QualityMetrics {
	scores := d.history.All()

	var current, sum float64
	for _, s := range scores {
		sum += s.Overall
	}
	average := 0.0
	if len(scores) > 0 {
		current = scores[len(scores)-1].Overall
		average = sum / float64(len(scores))
	}

	analysis := d.analyzer.Analyze(scores)

	return model.QualityMetrics{
		CurrentScore:      current,
		HistoricalAverage: average,
		RecentTrend:       ClassifyTrend(scores),
		DriftDetected:     analysis.IsDrifting,
		DriftAnalysis:     analysis,
	}
}

// ExportHistory returns a snapshot of the session history for persistence
// hand-off. The discriminator itself never does I/O.
func (d *Discriminator) ExportHistory() []model.QualityScore {
	return d.history.Export()
}

// ImportHistory replaces the session history with a persisted snapshot.
func (d *Discriminator) ImportHistory(scores []model.QualityScore) {
	d.history.Import(scores)
}

// HistoryLen returns the number of recorded scores.
func (d *Discriminator) HistoryLen() int {
	return d.history.Len()
}

// Config returns the configuration the discriminator was built with.
func (d *Discriminator) Config() model.DiscriminatorConfig {
	return d.cfg
}
