package model

// QualityScore is the immutable result of scoring one result batch against a
// query. All component scores are in [0,1].
type QualityScore struct {
	Overall     float64 `json:"overall_score"`     // 0.4*relevance + 0.2*diversity + 0.2*freshness + 0.2*consistency
	Relevance   float64 `json:"relevance_score"`   // Query-term coverage over titles and snippets
	Diversity   float64 `json:"diversity_score"`   // Source spread and snippet dissimilarity
	Freshness   float64 `json:"freshness_score"`   // Mean provider-supplied quality score
	Consistency float64 `json:"consistency_score"` // Field completeness across results
	Timestamp   int64   `json:"timestamp"`         // Creation time, unix milliseconds
}

// Recommendation is the action suggested by drift analysis.
type Recommendation string

const (
	RecommendMaintain Recommendation = "maintain" // Keep the current retrieval strategy
	RecommendAdjust   Recommendation = "adjust"   // Tune parameters or source mix
	RecommendRetrain  Recommendation = "retrain"  // Replace the retrieval strategy
)

// DriftAnalysis is a transient view of score history, recomputed on demand.
type DriftAnalysis struct {
	IsDrifting     bool           `json:"is_drifting"`
	DriftMagnitude float64        `json:"drift_magnitude"` // Signed; negative means degradation
	Confidence     float64        `json:"confidence"`      // Derived from recent-score variance, in [0,1]
	Recommendation Recommendation `json:"recommendation"`
	Details        string         `json:"details"`
}

// Trend classifies the direction of recent scores.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// QualityMetrics is the read-only snapshot combining the latest score, the
// all-time history mean, trend classification, and full drift analysis.
type QualityMetrics struct {
	CurrentScore      float64       `json:"current_score"`
	HistoricalAverage float64       `json:"historical_average"`
	RecentTrend       Trend         `json:"recent_trend"`
	DriftDetected     bool          `json:"drift_detected"`
	DriftAnalysis     DriftAnalysis `json:"drift_analysis"`
}
