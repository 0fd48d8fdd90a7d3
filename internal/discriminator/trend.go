package discriminator

import "github.com/MikePfunk28/agentic-search-sub000/internal/model"

const (
	trendMinSamples = 5
	trendSampleSize = 10
	trendSlopeBand  = 0.02
)

// ClassifyTrend fits an ordinary-least-squares line through the overall
// scores of the last ten entries (score vs. index) and buckets the slope.
// Fewer than five entries classify as stable.
func ClassifyTrend(scores []model.QualityScore) model.Trend {
	if len(scores) < trendMinSamples {
		return model.TrendStable
	}

	start := len(scores) - trendSampleSize
	if start < 0 {
		start = 0
	}
	recent := scores[start:]

	n := float64(len(recent))
	var sumI, sumY, sumIY, sumII float64
	for i, s := range recent {
		fi := float64(i)
		sumI += fi
		sumY += s.Overall
		sumIY += fi * s.Overall
		sumII += fi * fi
	}

	denom := n*sumII - sumI*sumI
	if denom == 0 {
		return model.TrendStable
	}
	slope := (n*sumIY - sumI*sumY) / denom

	switch {
	case slope > trendSlopeBand:
		return model.TrendImproving
	case slope < -trendSlopeBand:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}
