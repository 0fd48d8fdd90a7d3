package discriminator

import (
	"math"
	"testing"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func intPtr(v int) *int         { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCompute_EmptyResults(t *testing.T) {
	calc := NewCalculator()

	score := calc.Compute("golang concurrency", nil)

	if score.Relevance != 0 {
		t.Errorf("Expected relevance 0 for empty results, got %v", score.Relevance)
	}
	if score.Diversity != 1 {
		t.Errorf("Expected diversity 1 for empty results, got %v", score.Diversity)
	}
	if score.Freshness != 0.5 {
		t.Errorf("Expected freshness 0.5 for empty results, got %v", score.Freshness)
	}
	if score.Consistency != 1 {
		t.Errorf("Expected consistency 1 for empty results, got %v", score.Consistency)
	}
	// 0.4*0 + 0.2*1 + 0.2*0.5 + 0.2*1
	if !almostEqual(score.Overall, 0.5) {
		t.Errorf("Expected overall 0.5, got %v", score.Overall)
	}
	if score.Timestamp == 0 {
		t.Error("Expected timestamp to be set")
	}
}

func TestCompute_SingleFullMatch(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{Title: "Golang concurrency patterns", Snippet: "goroutines and channels", URL: "https://go.dev", Source: "go.dev"},
	}

	score := calc.Compute("golang concurrency", results)

	if score.Relevance != 1 {
		t.Errorf("Expected relevance 1, got %v", score.Relevance)
	}
	if score.Diversity != 1 {
		t.Errorf("Expected diversity 1 for a single result, got %v", score.Diversity)
	}
	if score.Consistency != 1 {
		t.Errorf("Expected consistency 1 for a single result, got %v", score.Consistency)
	}
	// 0.4*1 + 0.2*1 + 0.2*0.5 + 0.2*1
	if !almostEqual(score.Overall, 0.9) {
		t.Errorf("Expected overall 0.9, got %v", score.Overall)
	}
}

func TestRelevance_EmptyQuery(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{Title: "anything", Snippet: "at all"},
	}

	if r := calc.relevance("   ", results); r != 0 {
		t.Errorf("Expected relevance 0 for a query with no terms, got %v", r)
	}
}

func TestRelevance_PartialMatch(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{Title: "golang tutorial", Snippet: "a guide"},     // matches 1 of 2 terms
		{Title: "golang concurrency", Snippet: "patterns"}, // matches 2 of 2
	}

	r := calc.relevance("golang concurrency", results)
	if !almostEqual(r, 0.75) {
		t.Errorf("Expected relevance 0.75, got %v", r)
	}
}

func TestRelevance_SubstringMatching(t *testing.T) {
	calc := NewCalculator()

	// "go" matches as a substring of "golang"
	results := []model.SearchResult{
		{Title: "golang", Snippet: ""},
	}

	if r := calc.relevance("go", results); r != 1 {
		t.Errorf("Expected substring match to count, got %v", r)
	}
}

func TestDiversity_DistinctSourcesDistinctSnippets(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{Snippet: "alpha beta", Source: "a"},
		{Snippet: "gamma delta", Source: "b"},
	}

	// sourceDiversity = 2/2 = 1; jaccard = 0 so contentDiversity = 1
	if d := calc.diversity(results); !almostEqual(d, 1) {
		t.Errorf("Expected diversity 1, got %v", d)
	}
}

func TestDiversity_SameSourceIdenticalSnippets(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{Snippet: "alpha beta", Source: "a"},
		{Snippet: "alpha beta", Source: "a"},
	}

	// sourceDiversity = 1/2; jaccard = 1 so contentDiversity = 0
	if d := calc.diversity(results); !almostEqual(d, 0.25) {
		t.Errorf("Expected diversity 0.25, got %v", d)
	}
}

func TestDiversity_EmptySnippets(t *testing.T) {
	calc := NewCalculator()

	// Empty word sets have empty union; similarity counts as 0
	results := []model.SearchResult{
		{Snippet: "", Source: "a"},
		{Snippet: "", Source: "b"},
	}

	if d := calc.diversity(results); !almostEqual(d, 1) {
		t.Errorf("Expected diversity 1 for empty snippets, got %v", d)
	}
}

func TestFreshness_ProviderScores(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{AddScore: floatPtr(0.9)},
		{}, // defaults to 0.5
	}

	if f := calc.freshness(results); !almostEqual(f, 0.7) {
		t.Errorf("Expected freshness 0.7, got %v", f)
	}
}

func TestConsistency_MissingFields(t *testing.T) {
	calc := NewCalculator()

	results := []model.SearchResult{
		{Title: "a", Snippet: "b", URL: "https://example.com"},
		{Title: "c", Snippet: "d"}, // missing URL
	}

	if c := calc.consistency(results); !almostEqual(c, 5.0/6.0) {
		t.Errorf("Expected consistency 5/6, got %v", c)
	}
}

func TestApplyFeedback_Nil(t *testing.T) {
	calc := NewCalculator()
	score := model.QualityScore{Overall: 0.8}

	if got := calc.ApplyFeedback(score, nil); got.Overall != 0.8 {
		t.Errorf("Expected score unchanged, got %v", got.Overall)
	}
}

func TestApplyFeedback_Rating(t *testing.T) {
	calc := NewCalculator()
	score := model.QualityScore{Overall: 0.9}

	got := calc.ApplyFeedback(score, &model.UserFeedback{Rating: intPtr(3)})

	// 0.6*0.9 + 0.4*(3/5) = 0.78
	if !almostEqual(got.Overall, 0.78) {
		t.Errorf("Expected 0.78, got %v", got.Overall)
	}
}

func TestApplyFeedback_RatingPrecedesRelevant(t *testing.T) {
	calc := NewCalculator()
	score := model.QualityScore{Overall: 0.5}

	// Rating wins even when Relevant is set
	got := calc.ApplyFeedback(score, &model.UserFeedback{Relevant: true, Rating: intPtr(5)})

	// 0.6*0.5 + 0.4*1 = 0.7
	if !almostEqual(got.Overall, 0.7) {
		t.Errorf("Expected 0.7, got %v", got.Overall)
	}
}

func TestApplyFeedback_RelevantBoost(t *testing.T) {
	calc := NewCalculator()

	got := calc.ApplyFeedback(model.QualityScore{Overall: 0.6}, &model.UserFeedback{Relevant: true})
	if !almostEqual(got.Overall, 0.66) {
		t.Errorf("Expected 0.66, got %v", got.Overall)
	}

	// Capped at 1
	got = calc.ApplyFeedback(model.QualityScore{Overall: 0.95}, &model.UserFeedback{Relevant: true})
	if got.Overall != 1 {
		t.Errorf("Expected boost capped at 1, got %v", got.Overall)
	}
}

func TestApplyFeedback_NotRelevantPenalty(t *testing.T) {
	calc := NewCalculator()

	got := calc.ApplyFeedback(model.QualityScore{Overall: 0.5}, &model.UserFeedback{Relevant: false})
	if !almostEqual(got.Overall, 0.4) {
		t.Errorf("Expected 0.4, got %v", got.Overall)
	}
}

func TestApplyFeedback_InputUntouched(t *testing.T) {
	calc := NewCalculator()
	score := model.QualityScore{Overall: 0.5, Relevance: 0.7}

	got := calc.ApplyFeedback(score, &model.UserFeedback{Relevant: true})

	if score.Overall != 0.5 {
		t.Errorf("Expected input score untouched, got %v", score.Overall)
	}
	if got.Relevance != 0.7 {
		t.Errorf("Expected sub-scores carried over, got %v", got.Relevance)
	}
}

func TestJaccard(t *testing.T) {
	a := wordSet("alpha beta gamma")
	b := wordSet("beta gamma delta")

	if j := jaccard(a, b); !almostEqual(j, 0.5) {
		t.Errorf("Expected jaccard 0.5, got %v", j)
	}

	if j := jaccard(wordSet(""), wordSet("")); j != 0 {
		t.Errorf("Expected jaccard 0 for empty union, got %v", j)
	}
}
