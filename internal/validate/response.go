package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// citationPattern matches bracketed numeric citations like [1] or [2, 5].
var citationPattern = regexp.MustCompile(`\[\d+(?:\s*,\s*\d+)*\]`)

// inabilityPhrases are stock phrases indicating the model could not answer.
var inabilityPhrases = []string{"i cannot", "i'm unable", "error", "failed"}

// ResponseValidator checks the final response for length, query coverage,
// citations, and inability phrases.
type ResponseValidator struct {
	gateConfidence bool
}

// NewResponseValidator creates a response validator. When gateConfidence is
// false (the historical behavior) validity depends on errors only; the
// confidence value is reported but not gated, unlike the sibling validators.
func NewResponseValidator(gateConfidence bool) *ResponseValidator {
	return &ResponseValidator{gateConfidence: gateConfidence}
}

// Validate checks the response against the query and the sources it was
// built from.
func (v *ResponseValidator) Validate(query, response string, sources []model.SearchResult) model.ValidationResult {
	start := time.Now()
	res := model.ValidationResult{
		Component: model.ComponentResponse,
		Errors:    []string{},
		Warnings:  []string{},
	}

	if strings.TrimSpace(response) == "" {
		res.Errors = append(res.Errors, "response is empty")
		res.ElapsedMS = time.Since(start).Milliseconds()
		return res
	}

	if len(response) < 50 {
		res.Errors = append(res.Errors, "response too short to be useful")
	} else if len(response) < 100 {
		res.Warnings = append(res.Warnings, "response is quite short")
	}

	lower := strings.ToLower(response)

	queryTerms := strings.Fields(strings.ToLower(query))
	coverage := 0.0
	if len(queryTerms) > 0 {
		matched := 0
		for _, term := range queryTerms {
			if strings.Contains(lower, term) {
				matched++
			}
		}
		coverage = float64(matched) / float64(len(queryTerms))
		if coverage < 0.5 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("response covers only %.0f%% of query terms", coverage*100))
		}
	}

	if len(sources) > 0 && !citesAnySource(response, sources) {
		res.Warnings = append(res.Warnings, "response does not cite any provided source")
	}

	for _, phrase := range inabilityPhrases {
		if strings.Contains(lower, phrase) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("response contains inability indicator: %q", phrase))
		}
	}

	confidence := 0.7
	if len(response) > 200 {
		confidence += 0.1
	}
	if coverage > 0.7 {
		confidence += 0.1
	}
	if len(sources) > 0 {
		confidence += 0.1
	}
	if confidence > 1 {
		confidence = 1
	}

	res.Confidence = confidence
	res.Valid = len(res.Errors) == 0
	if v.gateConfidence {
		res.Valid = res.Valid && confidence >= 0.6
	}
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res
}

// citesAnySource reports whether the response carries a bracketed citation or
// mentions any source's URL or title verbatim.
func citesAnySource(response string, sources []model.SearchResult) bool {
	if citationPattern.MatchString(response) {
		return true
	}
	for _, s := range sources {
		if s.URL != "" && strings.Contains(response, s.URL) {
			return true
		}
		if s.Title != "" && strings.Contains(response, s.Title) {
			return true
		}
	}
	return false
}
