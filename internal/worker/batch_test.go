package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// stubEvaluator returns a canned report per path, failing paths listed in
// fail.
type stubEvaluator struct {
	fail map[string]bool
}

func (s *stubEvaluator) EvaluateFile(ctx context.Context, path string) (*model.Report, error) {
	if s.fail[path] {
		return nil, fmt.Errorf("evaluate %s: broken trace", path)
	}
	return &model.Report{Query: "q", Session: path}, nil
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	eval := &stubEvaluator{fail: map[string]bool{"b.json": true}}
	b := NewBatchProcessor(eval, 2)

	results := b.ProcessFiles(context.Background(), []string{"a.json", "b.json", "c.json"})

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	// Completion order is not deterministic; match by path.
	byPath := make(map[string]*EvalResult)
	for _, r := range results {
		byPath[r.Path] = r
	}
	for _, path := range []string{"a.json", "b.json", "c.json"} {
		if byPath[path] == nil {
			t.Fatalf("Missing result for %s", path)
		}
	}
	if byPath["a.json"].Error != nil || byPath["a.json"].Report == nil {
		t.Errorf("Expected a.json to succeed: %+v", byPath["a.json"])
	}
	if byPath["b.json"].Error == nil {
		t.Error("Expected b.json to fail")
	}
	if byPath["b.json"].Report != nil {
		t.Error("Expected no report on failure")
	}
}

func TestBatchProcessor_NoFiles(t *testing.T) {
	b := NewBatchProcessor(&stubEvaluator{}, 2)

	results := b.ProcessFiles(context.Background(), nil)

	if results == nil || len(results) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", results)
	}
}

func TestBatchProcessor_ProcessList(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "traces.txt")
	content := "a.json\n\n# a comment\nb.json\na.json\n"
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	b := NewBatchProcessor(&stubEvaluator{}, 2)
	results, err := b.ProcessList(context.Background(), listPath)
	if err != nil {
		t.Fatalf("ProcessList: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results after dedupe, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessListMissingFile(t *testing.T) {
	b := NewBatchProcessor(&stubEvaluator{}, 2)

	if _, err := b.ProcessList(context.Background(), "/nonexistent/list.txt"); err == nil {
		t.Error("Expected error for missing list file")
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.txt")
	content := "# traces to score\ntraces/one.json\n  traces/two.json  \n\ntraces/one.json\n# done\n"
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}
	want := []string{"traces/one.json", "traces/two.json"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Path %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}
