package discriminator

import (
	"fmt"
	"math"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Analyzer compares a recent window of scores against the older remainder of
// history and classifies the difference into a recommendation.
type Analyzer struct {
	cfg model.DiscriminatorConfig
}

// NewAnalyzer creates an analyzer with the given thresholds.
func NewAnalyzer(cfg model.DiscriminatorConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze recomputes drift from scratch over the given chronological scores.
// The result is transient and never stored.
func (a *Analyzer) Analyze(scores []model.QualityScore) model.DriftAnalysis {
	if len(scores) < a.cfg.MinSamplesForAnalysis {
		return model.DriftAnalysis{
			Recommendation: model.RecommendMaintain,
			Details:        "Insufficient historical data for drift analysis",
		}
	}

	n := len(scores)
	recentWindow := a.cfg.HistoricalWindow / 3

	// Recent window: the last recentWindow entries. Older window: everything
	// before it, bounded below by twice the historical window (in practice the
	// whole remainder, since history never exceeds that bound).
	recentStart := n - recentWindow
	if recentStart < 0 || recentWindow == 0 {
		recentStart = 0
	}
	olderStart := n - 2*a.cfg.HistoricalWindow
	if olderStart < 0 {
		olderStart = 0
	}
	olderEnd := recentStart
	if olderEnd < olderStart {
		olderEnd = olderStart
	}

	recent := overallScores(scores[recentStart:])
	older := overallScores(scores[olderStart:olderEnd])

	if len(older) == 0 {
		return model.DriftAnalysis{
			Confidence:     0.5,
			Recommendation: model.RecommendMaintain,
			Details:        "Building baseline - continue collecting data",
		}
	}

	recentAvg := mean(recent)
	olderAvg := mean(older)
	magnitude := recentAvg - olderAvg

	// IEEE division on purpose: a zero baseline yields Inf (or NaN for 0/0),
	// and the threshold comparisons below behave accordingly.
	ratio := math.Abs(magnitude) / olderAvg
	drifting := ratio >= a.cfg.DriftThreshold

	confidence := clamp01(1 - 2*populationVariance(recent))

	recommendation := model.RecommendMaintain
	var details string
	switch {
	case drifting && ratio >= a.cfg.RetrainThreshold:
		recommendation = model.RecommendRetrain
		details = fmt.Sprintf("Significant drift detected (%.1f%% degradation) - retraining recommended", ratio*100)
	case drifting && ratio >= a.cfg.AdjustmentThreshold:
		recommendation = model.RecommendAdjust
		details = fmt.Sprintf("Moderate drift detected (%.1f%% degradation) - adjustment recommended", ratio*100)
	case drifting:
		// Minor drift alerts through Details but leaves the recommendation at
		// maintain. Intentional: the ladder only escalates past the
		// adjustment threshold.
		details = fmt.Sprintf("Minor drift detected (%.1f%% change). Monitor closely.", ratio*100)
	case magnitude > 0:
		details = fmt.Sprintf("Performance improving (%.1f%% gain)", ratio*100)
	default:
		details = "Performance is stable"
	}

	return model.DriftAnalysis{
		IsDrifting:     drifting,
		DriftMagnitude: magnitude,
		Confidence:     confidence,
		Recommendation: recommendation,
		Details:        details,
	}
}

func overallScores(scores []model.QualityScore) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = s.Overall
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationVariance is the mean of squared deviations from the mean.
func populationVariance(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
