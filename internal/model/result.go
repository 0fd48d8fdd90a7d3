package model

import "time"

// SearchResult is a single item returned by an upstream search provider.
// The core treats it as an opaque record; it never fetches or mutates results.
type SearchResult struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Snippet       string     `json:"snippet"`
	URL           string     `json:"url"`
	Source        string     `json:"source"`                   // Provider name (e.g., "tavily", "duckduckgo")
	PublishedDate *time.Time `json:"published_date,omitempty"` // Publication date, if the provider supplied one
	AddScore      *float64   `json:"add_score,omitempty"`      // Provider-supplied quality score in [0,1]
}

// UserFeedback is explicit feedback on a result batch. Consumed once by the
// feedback adjustment and never persisted.
type UserFeedback struct {
	Relevant bool `json:"relevant"`
	Rating   *int `json:"rating,omitempty"` // 1-5; takes precedence over Relevant when present
}

// ReasoningStep is one step of the upstream reasoning chain.
type ReasoningStep struct {
	Input      string  `json:"input"`
	Output     string  `json:"output"`
	Confidence float64 `json:"confidence"`
}

// Trace captures one completed search invocation handed off by the
// orchestrator: the query, what retrieval returned, the reasoning chain,
// and the final response shown to the user.
type Trace struct {
	Query          string          `json:"query"`
	Results        []SearchResult  `json:"results"`
	ReasoningSteps []ReasoningStep `json:"reasoning_steps,omitempty"`
	FinalResponse  string          `json:"final_response,omitempty"`
	Feedback       *UserFeedback   `json:"feedback,omitempty"`
}
