package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// Evaluator runs one trace file through the evaluation pipeline.
type Evaluator interface {
	EvaluateFile(ctx context.Context, path string) (*model.Report, error)
}

// EvalJob evaluates a single trace file.
type EvalJob struct {
	Path      string
	Evaluator Evaluator
}

// Execute runs the evaluation.
func (j *EvalJob) Execute(ctx context.Context) Result {
	report, err := j.Evaluator.EvaluateFile(ctx, j.Path)
	return &EvalResult{Path: j.Path, Report: report, Error: err}
}

// EvalResult pairs a trace file with its report or failure.
type EvalResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the evaluation error, if any.
func (r *EvalResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates many trace files concurrently.
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(evaluator Evaluator, concurrency int) *BatchProcessor {
	return &BatchProcessor{evaluator: evaluator, concurrency: concurrency}
}

// ProcessFiles evaluates the given trace files through the worker pool.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*EvalResult {
	if len(paths) == 0 {
		return []*EvalResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&EvalJob{Path: path, Evaluator: b.evaluator})
	}

	results := pool.Wait()

	evalResults := make([]*EvalResult, len(results))
	for i, result := range results {
		evalResults[i] = result.(*EvalResult)
	}
	return evalResults
}

// ProcessList reads trace file paths from a list file and evaluates them.
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*EvalResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read trace list: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads paths from a file, one per line, skipping blanks
// and # comments and deduplicating.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
