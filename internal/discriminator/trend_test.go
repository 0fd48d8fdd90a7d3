package discriminator

import (
	"testing"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

func TestClassifyTrend_TooFewSamples(t *testing.T) {
	scores := scoresWithOverall(0.1, 0.9, 0.1, 0.9)

	if trend := ClassifyTrend(scores); trend != model.TrendStable {
		t.Errorf("Expected stable with fewer than five samples, got %s", trend)
	}
}

func TestClassifyTrend_Improving(t *testing.T) {
	scores := scoresWithOverall(0.1, 0.2, 0.3, 0.4, 0.5, 0.6)

	if trend := ClassifyTrend(scores); trend != model.TrendImproving {
		t.Errorf("Expected improving, got %s", trend)
	}
}

func TestClassifyTrend_Declining(t *testing.T) {
	scores := scoresWithOverall(0.9, 0.8, 0.7, 0.6, 0.5)

	if trend := ClassifyTrend(scores); trend != model.TrendDeclining {
		t.Errorf("Expected declining, got %s", trend)
	}
}

func TestClassifyTrend_Flat(t *testing.T) {
	scores := scoresWithOverall(0.7, 0.7, 0.7, 0.7, 0.7, 0.7)

	if trend := ClassifyTrend(scores); trend != model.TrendStable {
		t.Errorf("Expected stable, got %s", trend)
	}
}

func TestClassifyTrend_SlopeWithinBand(t *testing.T) {
	// Slope 0.01 per step sits inside the ±0.02 stability band
	scores := scoresWithOverall(0.50, 0.51, 0.52, 0.53, 0.54)

	if trend := ClassifyTrend(scores); trend != model.TrendStable {
		t.Errorf("Expected stable for a shallow slope, got %s", trend)
	}
}

func TestClassifyTrend_OnlyLastTenConsidered(t *testing.T) {
	// A long decline followed by ten rising entries classifies as improving
	declining := scoresWithOverall(1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1)
	rising := scoresWithOverall(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0)

	if trend := ClassifyTrend(append(declining, rising...)); trend != model.TrendImproving {
		t.Errorf("Expected improving from the last ten entries, got %s", trend)
	}
}
