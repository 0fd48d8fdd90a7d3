package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Probe.Enabled = false
	return cfg
}

func writeTrace(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	return path
}

const sampleTrace = `{
	"query": "golang concurrency patterns",
	"results": [
		{"id": "1", "title": "Go Concurrency Patterns", "snippet": "Pipelines and cancellation with golang channels", "url": "https://go.dev/blog/pipelines", "source": "go.dev"},
		{"id": "2", "title": "Concurrency in Go", "snippet": "Worker pools and fan-out patterns in golang", "url": "https://example.com/workers", "source": "example.com"}
	],
	"reasoning_steps": [
		{"input": "golang concurrency patterns", "output": "The canonical references cover pipelines, cancellation and worker pools in depth.", "confidence": 0.9}
	],
	"final_response": "Go concurrency patterns center on goroutines and channels. The pipeline pattern composes stages connected by channels, with explicit cancellation [1]. Worker pools bound parallelism by fanning work out to a fixed set of goroutines [2]. Both patterns appear throughout the standard library and are covered in detail on go.dev."
}`

func TestNewEvaluator_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Discriminator.DriftThreshold = -1

	if _, err := NewEvaluator(cfg); err == nil {
		t.Fatal("Expected error for invalid discriminator config")
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	eval, err := NewEvaluator(testConfig(t))
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	path := writeTrace(t, t.TempDir(), "trace.json", sampleTrace)
	trace, err := LoadTrace(path)
	if err != nil {
		t.Fatalf("LoadTrace: %v", err)
	}

	report, err := eval.Evaluate(context.Background(), *trace)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if report.Query != "golang concurrency patterns" {
		t.Errorf("Unexpected query: %s", report.Query)
	}
	if report.ResultCount != 2 {
		t.Errorf("Expected 2 results, got %d", report.ResultCount)
	}
	if report.Score.Overall <= 0 || report.Score.Overall > 1 {
		t.Errorf("Overall score out of range: %v", report.Score.Overall)
	}
	if len(report.Sources) != 2 {
		t.Errorf("Expected 2 source URLs, got %v", report.Sources)
	}
	if len(report.Validation.Components) != 3 {
		t.Errorf("Expected 3 validation components, got %d", len(report.Validation.Components))
	}
	if report.LinkChecks != nil {
		t.Error("Expected no link checks when probing disabled")
	}
	if report.LLM != nil {
		t.Error("Expected no LLM summary when disabled")
	}

	// Score was recorded into history
	if eval.Discriminator().HistoryLen() != 1 {
		t.Errorf("Expected history length 1, got %d", eval.Discriminator().HistoryLen())
	}
}

func TestEvaluator_EvaluateFile_MissingFile(t *testing.T) {
	eval, err := NewEvaluator(testConfig(t))
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	if _, err := eval.EvaluateFile(context.Background(), "/nonexistent/trace.json"); err == nil {
		t.Fatal("Expected error for missing trace file")
	}
}

func TestLoadTrace_InvalidJSON(t *testing.T) {
	path := writeTrace(t, t.TempDir(), "bad.json", "{not json")

	if _, err := LoadTrace(path); err == nil {
		t.Fatal("Expected error for malformed trace")
	}
}

func TestEvaluator_SessionRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := testConfig(t)
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = dir

	eval, err := NewEvaluator(cfg)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	if err := eval.UseSession("test-session"); err != nil {
		t.Fatalf("UseSession: %v", err)
	}

	path := writeTrace(t, dir, "trace.json", sampleTrace)
	if _, err := eval.EvaluateFile(context.Background(), path); err != nil {
		t.Fatalf("EvaluateFile: %v", err)
	}
	if err := eval.SaveSession(); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	// A fresh evaluator picks the history back up
	eval2, err := NewEvaluator(cfg)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	if err := eval2.UseSession("test-session"); err != nil {
		t.Fatalf("UseSession: %v", err)
	}
	if eval2.Discriminator().HistoryLen() != 1 {
		t.Errorf("Expected history length 1 after reload, got %d", eval2.Discriminator().HistoryLen())
	}
}

func TestEvaluator_RenderReport(t *testing.T) {
	dir := t.TempDir()

	eval, err := NewEvaluator(testConfig(t))
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	path := writeTrace(t, dir, "trace.json", sampleTrace)
	report, err := eval.EvaluateFile(context.Background(), path)
	if err != nil {
		t.Fatalf("EvaluateFile: %v", err)
	}

	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	if err := eval.RenderReport(report, jsonPath, mdPath, false); err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read JSON report: %v", err)
	}
	if !strings.Contains(string(jsonData), `"query": "golang concurrency patterns"`) {
		t.Error("Expected JSON report to contain query")
	}

	mdData, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read markdown report: %v", err)
	}
	md := string(mdData)
	for _, section := range []string{
		"# Search Quality Report",
		"## Quality Score",
		"## Drift",
		"## Validation",
		"retrieval",
		"reasoning",
		"response",
	} {
		if !strings.Contains(md, section) {
			t.Errorf("Expected markdown to contain %q", section)
		}
	}
}

func TestSourceURLs_Dedupe(t *testing.T) {
	results := []model.SearchResult{
		{URL: "https://example.com/a"},
		{URL: "https://example.com/a"},
		{URL: ""},
		{URL: "https://example.com/b"},
	}

	urls := sourceURLs(results)

	if len(urls) != 2 {
		t.Fatalf("Expected 2 unique URLs, got %v", urls)
	}
	if urls[0] != "https://example.com/a" || urls[1] != "https://example.com/b" {
		t.Errorf("Unexpected URL order: %v", urls)
	}
}
