package validate

import (
	"math"
	"strings"
	"testing"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func goodResults() []model.SearchResult {
	return []model.SearchResult{
		{ID: "1", Title: "Golang concurrency patterns", Snippet: "goroutines channels pipelines", URL: "https://go.dev/blog/pipelines", Source: "go.dev"},
		{ID: "2", Title: "Golang concurrency guide", Snippet: "worker pools fanout parallelism", URL: "https://example.com/guide", Source: "example.com"},
	}
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestRetrieval_EmptyResults(t *testing.T) {
	v := NewRetrievalValidator(nil)

	res := v.Validate("golang concurrency", nil)

	if res.Valid {
		t.Error("Expected invalid for empty results")
	}
	if !hasMessage(res.Errors, "no search results returned") {
		t.Errorf("Expected hard-fail error, got %v", res.Errors)
	}
	if res.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %v", res.Confidence)
	}
	if res.Metrics != nil {
		t.Error("Expected no metrics on hard fail")
	}
}

func TestRetrieval_GoodBatch(t *testing.T) {
	v := NewRetrievalValidator(nil)

	res := v.Validate("golang concurrency", goodResults())

	if !res.Valid {
		t.Fatalf("Expected valid, got errors %v", res.Errors)
	}
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("Expected clean batch, got errors %v warnings %v", res.Errors, res.Warnings)
	}
	for _, key := range []string{"relevance", "diversity", "freshness", "consistency"} {
		if _, ok := res.Metrics[key]; !ok {
			t.Errorf("Expected metric %q", key)
		}
	}
	// Confidence mirrors the overall quality score
	if res.Confidence < 0.5 {
		t.Errorf("Expected confidence >= 0.5, got %v", res.Confidence)
	}
}

func TestRetrieval_MissingFields(t *testing.T) {
	v := NewRetrievalValidator(nil)

	results := goodResults()
	results[0].Title = ""
	results[1].Snippet = ""

	res := v.Validate("golang concurrency", results)

	if !hasMessage(res.Warnings, "result 0 has no title") {
		t.Errorf("Expected missing-title warning, got %v", res.Warnings)
	}
	if !hasMessage(res.Warnings, "result 1 has no snippet") {
		t.Errorf("Expected missing-snippet warning, got %v", res.Warnings)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Expected warnings only, got errors %v", res.Errors)
	}
}

func TestRetrieval_MissingURLIsError(t *testing.T) {
	v := NewRetrievalValidator(nil)

	results := goodResults()
	results[1].URL = ""

	res := v.Validate("golang concurrency", results)

	if !hasMessage(res.Errors, "result 1 has no URL") {
		t.Errorf("Expected missing-URL error, got %v", res.Errors)
	}
	if res.Valid {
		t.Error("Expected invalid with a missing-URL error")
	}
}

func TestRetrieval_DuplicateURLWarning(t *testing.T) {
	v := NewRetrievalValidator(nil)

	results := goodResults()
	results[1].URL = results[0].URL

	res := v.Validate("golang concurrency", results)

	if !hasMessage(res.Warnings, "duplicate URL across results") {
		t.Errorf("Expected duplicate-URL warning, got %v", res.Warnings)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", res.Errors)
	}
}

func TestRetrieval_LowConfidenceGate(t *testing.T) {
	v := NewRetrievalValidator(nil)

	// Irrelevant, same-source, identical-snippet results: overall quality
	// lands well under the 0.5 bar without any structural error
	results := []model.SearchResult{
		{Title: "unrelated", Snippet: "identical words here", URL: "https://a.example/1", Source: "a"},
		{Title: "unrelated", Snippet: "identical words here", URL: "https://a.example/2", Source: "a"},
	}

	res := v.Validate("quantum chromodynamics", results)

	if len(res.Errors) != 0 {
		t.Fatalf("Expected no errors, got %v", res.Errors)
	}
	if res.Confidence >= 0.5 {
		t.Fatalf("Expected confidence below 0.5, got %v", res.Confidence)
	}
	if res.Valid {
		t.Error("Expected invalid on the confidence gate alone")
	}
}
