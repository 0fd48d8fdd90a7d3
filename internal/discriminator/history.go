package discriminator

import (
	"sync"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// History is a bounded, append-only, time-ordered sequence of quality scores.
// Insertion order is chronological order. Length never exceeds twice the
// window: when an append would cross that bound, only the most recent window
// entries are retained. Truncation is permanent, not archival.
//
// Appends are serialized so the truncation invariant holds even if multiple
// callers share one discriminator instance.
type History struct {
	mu     sync.Mutex
	window int
	scores []model.QualityScore
}

// NewHistory creates an empty history with the given window.
func NewHistory(window int) *History {
	if window <= 0 {
		window = 1
	}
	return &History{window: window}
}

// Append pushes a score to the end.
func (h *History) Append(score model.QualityScore) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.scores = append(h.scores, score)
	if len(h.scores) > 2*h.window {
		h.scores = append([]model.QualityScore(nil), h.scores[len(h.scores)-h.window:]...)
	}
}

// All returns a chronological copy of the stored scores.
func (h *History) All() []model.QualityScore {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.QualityScore(nil), h.scores...)
}

// Len returns the number of stored scores.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.scores)
}

// Export returns a snapshot copy for persistence hand-off.
func (h *History) Export() []model.QualityScore {
	return h.All()
}

// Import replaces the stored scores with a snapshot, keeping only the last
// window entries.
func (h *History) Import(scores []model.QualityScore) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(scores) > h.window {
		scores = scores[len(scores)-h.window:]
	}
	h.scores = append([]model.QualityScore(nil), scores...)
}
