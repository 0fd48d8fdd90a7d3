package discriminator

import (
	"math"
	"strings"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Overall score weights. Relevance dominates; the remaining signals share the rest.
const (
	weightRelevance   = 0.4
	weightDiversity   = 0.2
	weightFreshness   = 0.2
	weightConsistency = 0.2
)

// Calculator computes quality sub-scores for a result batch against a query.
// All methods are pure; recording is a separate concern.
type Calculator struct{}

// NewCalculator creates a new calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute scores a result batch. Every sub-score and the weighted overall are
// in [0,1]. Malformed-but-well-typed input degrades to numeric defaults, it
// never errors.
func (c *Calculator) Compute(query string, results []model.SearchResult) model.QualityScore {
	relevance := c.relevance(query, results)
	diversity := c.diversity(results)
	freshness := c.freshness(results)
	consistency := c.consistency(results)

	overall := weightRelevance*relevance +
		weightDiversity*diversity +
		weightFreshness*freshness +
		weightConsistency*consistency

	return model.QualityScore{
		Overall:     overall,
		Relevance:   relevance,
		Diversity:   diversity,
		Freshness:   freshness,
		Consistency: consistency,
		Timestamp:   time.Now().UnixMilli(),
	}
}

// ApplyFeedback folds explicit user feedback into the overall score and
// returns a new score; the input is left untouched. A rating takes precedence
// over the thumbs-up/down signal.
func (c *Calculator) ApplyFeedback(score model.QualityScore, feedback *model.UserFeedback) model.QualityScore {
	if feedback == nil {
		return score
	}

	adjusted := score
	switch {
	case feedback.Rating != nil:
		adjusted.Overall = 0.6*score.Overall + 0.4*(float64(*feedback.Rating)/5)
	case feedback.Relevant:
		adjusted.Overall = math.Min(1, score.Overall*1.1)
	default:
		adjusted.Overall = math.Max(0, score.Overall*0.8)
	}
	return adjusted
}

// relevance is the mean per-result fraction of query terms appearing as
// substrings of the lowercased title+snippet. Empty results score 0, as does
// a query with no terms (the ratio has no denominator otherwise).
func (c *Calculator) relevance(query string, results []model.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}

	queryTerms := strings.Fields(strings.ToLower(query))
	if len(queryTerms) == 0 {
		return 0
	}

	var sum float64
	for _, r := range results {
		content := strings.ToLower(r.Title + " " + r.Snippet)
		matched := 0
		for _, term := range queryTerms {
			if strings.Contains(content, term) {
				matched++
			}
		}
		sum += float64(matched) / float64(len(queryTerms))
	}

	return math.Min(sum/float64(len(results)), 1)
}

// diversity blends source spread with snippet dissimilarity. Fewer than two
// results are trivially diverse.
func (c *Calculator) diversity(results []model.SearchResult) float64 {
	if len(results) < 2 {
		return 1
	}

	sources := make(map[string]bool)
	for _, r := range results {
		sources[r.Source] = true
	}
	sourceDiversity := float64(len(sources)) / float64(len(results))

	contentDiversity := 1 - meanPairwiseSimilarity(results)

	return (sourceDiversity + contentDiversity) / 2
}

// meanPairwiseSimilarity averages the Jaccard similarity of lowercase snippet
// word-sets over all unordered pairs.
func meanPairwiseSimilarity(results []model.SearchResult) float64 {
	sets := make([]map[string]bool, len(results))
	for i, r := range results {
		sets[i] = wordSet(r.Snippet)
	}

	var sum float64
	pairs := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			sum += jaccard(sets[i], sets[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// freshness is the mean provider-supplied quality score, defaulting to a 0.5
// neutral prior per result and for an empty batch. Publication dates are not
// consulted at this layer.
func (c *Calculator) freshness(results []model.SearchResult) float64 {
	if len(results) == 0 {
		return 0.5
	}

	var sum float64
	for _, r := range results {
		if r.AddScore != nil {
			sum += *r.AddScore
		} else {
			sum += 0.5
		}
	}
	return sum / float64(len(results))
}

// consistency is the field-completeness ratio across the batch. Fewer than
// two results are trivially consistent.
func (c *Calculator) consistency(results []model.SearchResult) float64 {
	if len(results) < 2 {
		return 1
	}

	populated := 0
	for _, r := range results {
		if r.URL != "" {
			populated++
		}
		if r.Snippet != "" {
			populated++
		}
		if r.Title != "" {
			populated++
		}
	}
	return float64(populated) / float64(3*len(results))
}
