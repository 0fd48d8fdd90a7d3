package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
	"github.com/MikePfunk28/agentic-search-sub000/internal/worker"
)

const probeMaxRetries = 3

// probeSleepFunc is the sleep function used between retries (injectable for tests)
var probeSleepFunc = time.Sleep

// Prober HEAD-checks result URLs concurrently. It is optional and advisory:
// its findings become warnings on the report, never score inputs.
type Prober struct {
	httpClient *http.Client
	cfg        model.ProbeConfig
	limiter    *worker.Limiter
	robots     *robotsChecker
}

// NewProber creates a prober from configuration, applying defaults for
// unset limits.
func NewProber(cfg model.ProbeConfig) *Prober {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}

	var robots *robotsChecker
	if cfg.RespectRobots {
		robots = newRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Prober{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		cfg:     cfg,
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		robots:  robots,
	}
}

// Probe checks all result URLs concurrently, preserving input order.
func (p *Prober) Probe(ctx context.Context, results []model.SearchResult) []model.LinkCheck {
	if len(results) == 0 {
		return []model.LinkCheck{}
	}

	checks := make([]model.LinkCheck, len(results))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.cfg.MaxWorkers)

	for i, r := range results {
		if r.URL == "" {
			checks[i] = model.LinkCheck{Error: "result has no URL", IsDead: true}
			continue
		}

		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				checks[idx] = model.LinkCheck{URL: rawURL, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			checks[idx] = p.probeWithRetry(ctx, rawURL)
		}(i, r.URL)
	}

	wg.Wait()
	return checks
}

// probeSingle checks a single URL.
func (p *Prober) probeSingle(ctx context.Context, rawURL string) model.LinkCheck {
	check := model.LinkCheck{URL: rawURL}

	if p.robots != nil && !p.robots.allowed(ctx, rawURL) {
		check.SkippedRobots = true
		return check
	}

	if err := p.limiter.Wait(ctx, rawURL); err != nil {
		check.Error = fmt.Sprintf("rate limit wait: %v", err)
		return check
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		check.Error = fmt.Sprintf("create request: %v", err)
		check.IsDead = true
		return check
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		check.Error = fmt.Sprintf("request failed: %v", err)
		check.IsDead = true
		return check
	}
	defer func() { _ = resp.Body.Close() }()

	check.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		check.IsAccessible = true
	} else if resp.StatusCode == 404 || resp.StatusCode == 410 {
		check.IsDead = true
	}

	if resp.Request.URL.String() != rawURL {
		check.RedirectURL = resp.Request.URL.String()
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			check.LastModified = &t
			ageDays := int(time.Since(t).Hours() / 24)
			check.AgeDays = &ageDays
		}
	}

	return check
}

// probeWithRetry retries transient failures with exponential backoff.
func (p *Prober) probeWithRetry(ctx context.Context, rawURL string) model.LinkCheck {
	var check model.LinkCheck
	for attempt := 0; attempt < probeMaxRetries; attempt++ {
		check = p.probeSingle(ctx, rawURL)
		if !isRetryableCheck(check) {
			return check
		}
		if attempt < probeMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			probeSleepFunc(backoff)
		}
	}
	return check
}

// isRetryableCheck returns true for results that indicate transient failures.
func isRetryableCheck(check model.LinkCheck) bool {
	if check.StatusCode >= 500 && check.StatusCode < 600 {
		return true
	}
	if check.StatusCode == 429 {
		return true
	}
	if check.Error != "" {
		s := strings.ToLower(check.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}

// LinkWarnings summarizes probe findings as report warnings.
func LinkWarnings(checks []model.LinkCheck) []string {
	var warnings []string
	for _, c := range checks {
		switch {
		case c.SkippedRobots:
			warnings = append(warnings, fmt.Sprintf("probe skipped by robots.txt: %s", c.URL))
		case c.IsDead:
			warnings = append(warnings, fmt.Sprintf("dead link: %s", c.URL))
		case !c.IsAccessible && c.Error != "":
			warnings = append(warnings, fmt.Sprintf("unreachable link: %s (%s)", c.URL, c.Error))
		case !c.IsAccessible && c.StatusCode != 0:
			warnings = append(warnings, fmt.Sprintf("link returned status %d: %s", c.StatusCode, c.URL))
		}
	}
	return warnings
}
