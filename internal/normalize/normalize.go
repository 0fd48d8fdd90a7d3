// Package normalize flattens trace text to plain text before scoring.
// Upstream providers sometimes hand back snippets or responses as HTML
// fragments; term matching and Jaccard overlap operate on words, not markup.
package normalize

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed. Input with no markup comes back as-is.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}

// Trace returns a copy of the trace with result titles, snippets, and the
// final response flattened to text. The original trace is left untouched.
func Trace(t model.Trace) model.Trace {
	out := t
	out.Results = make([]model.SearchResult, len(t.Results))
	for i, r := range t.Results {
		r.Title = StripHTML(r.Title)
		r.Snippet = StripHTML(r.Snippet)
		out.Results[i] = r
	}
	out.FinalResponse = StripHTML(t.FinalResponse)
	return out
}
