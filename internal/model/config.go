package model

import (
	"fmt"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Discriminator DiscriminatorConfig `yaml:"discriminator" json:"discriminator"`
	Validation    ValidationConfig    `yaml:"validation" json:"validation"`
	Probe         ProbeConfig         `yaml:"probe" json:"probe"`
	Cache         CacheConfig         `yaml:"cache" json:"cache"`
	LLM           LLMConfig           `yaml:"llm" json:"llm"`
	Concurrency   ConcurrencyConfig   `yaml:"concurrency" json:"concurrency"`
	Output        OutputConfig        `yaml:"output" json:"output"`
}

// DiscriminatorConfig holds the scoring and drift-analysis parameters.
// Immutable after construction; validate before use.
type DiscriminatorConfig struct {
	DriftThreshold        float64 `yaml:"drift_threshold" json:"drift_threshold"`
	AdjustmentThreshold   float64 `yaml:"adjustment_threshold" json:"adjustment_threshold"`
	RetrainThreshold      float64 `yaml:"retrain_threshold" json:"retrain_threshold"`
	HistoricalWindow      int     `yaml:"historical_window" json:"historical_window"`
	MinSamplesForAnalysis int     `yaml:"min_samples_for_analysis" json:"min_samples_for_analysis"`
}

// DefaultDiscriminatorConfig returns the standard thresholds.
func DefaultDiscriminatorConfig() DiscriminatorConfig {
	return DiscriminatorConfig{
		DriftThreshold:        0.15,
		AdjustmentThreshold:   0.25,
		RetrainThreshold:      0.40,
		HistoricalWindow:      100,
		MinSamplesForAnalysis: 10,
	}
}

// Validate rejects configurations the recommendation ladder cannot work with.
func (c DiscriminatorConfig) Validate() error {
	if c.DriftThreshold <= 0 {
		return fmt.Errorf("drift threshold must be positive, got %v", c.DriftThreshold)
	}
	if !(c.DriftThreshold < c.AdjustmentThreshold && c.AdjustmentThreshold < c.RetrainThreshold) {
		return fmt.Errorf("thresholds must be strictly ordered: drift (%v) < adjustment (%v) < retrain (%v)",
			c.DriftThreshold, c.AdjustmentThreshold, c.RetrainThreshold)
	}
	if c.HistoricalWindow <= 0 {
		return fmt.Errorf("historical window must be positive, got %d", c.HistoricalWindow)
	}
	if c.MinSamplesForAnalysis <= 0 {
		return fmt.Errorf("min samples for analysis must be positive, got %d", c.MinSamplesForAnalysis)
	}
	return nil
}

// ValidationConfig holds the validation pipeline parameters.
type ValidationConfig struct {
	MinConfidenceThreshold float64 `yaml:"min_confidence_threshold" json:"min_confidence_threshold"`
	StrictMode             bool    `yaml:"strict_mode" json:"strict_mode"`
	EnableLogging          bool    `yaml:"enable_logging" json:"enable_logging"`
	AuditLogCap            int     `yaml:"audit_log_cap" json:"audit_log_cap"`
	// GateResponseConfidence additionally requires the response validator to
	// clear the 0.6 confidence bar, matching the other two validators. Off by
	// default: the response validator historically gates on errors only.
	GateResponseConfidence bool `yaml:"gate_response_confidence" json:"gate_response_confidence"`
}

// DefaultValidationConfig returns the standard pipeline settings.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MinConfidenceThreshold: 0.6,
		StrictMode:             false,
		EnableLogging:          true,
		AuditLogCap:            256,
	}
}

// Validate checks pipeline settings.
func (c ValidationConfig) Validate() error {
	if c.MinConfidenceThreshold < 0 || c.MinConfidenceThreshold > 1 {
		return fmt.Errorf("min confidence threshold must be in [0,1], got %v", c.MinConfidenceThreshold)
	}
	if c.AuditLogCap <= 0 {
		return fmt.Errorf("audit log cap must be positive, got %d", c.AuditLogCap)
	}
	return nil
}

// ProbeConfig controls the optional result-link liveness prober.
type ProbeConfig struct {
	Enabled           bool          `yaml:"enabled" json:"enabled"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	MaxWorkers        int           `yaml:"max_workers" json:"max_workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
	RespectRobots     bool          `yaml:"respect_robots" json:"respect_robots"`
}

// CacheConfig controls the session snapshot store.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// LLMConfig controls the optional report summarizer.
type LLMConfig struct {
	Provider       string `yaml:"provider" json:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model          string `yaml:"model" json:"model"`
	APIKey         string `yaml:"-" json:"-"`
	BaseURL        string `yaml:"base_url" json:"base_url"`
	Timeout        int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens      int    `yaml:"max_tokens" json:"max_tokens"`
	StrictEvidence bool   `yaml:"strict_evidence" json:"strict_evidence"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the complete default configuration.
func DefaultConfig() *Config {
	return &Config{
		Discriminator: DefaultDiscriminatorConfig(),
		Validation:    DefaultValidationConfig(),
		Probe: ProbeConfig{
			Enabled:           false,
			Timeout:           10 * time.Second,
			MaxWorkers:        20,
			RequestsPerSecond: 2,
			Burst:             5,
			UserAgent:         "agentic-search/0.1 (+https://github.com/MikePfunk28/agentic-search-sub000)",
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.asearch/cache by the store
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   30 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:       "",
			Timeout:        30,
			MaxTokens:      1000,
			StrictEvidence: true,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.Discriminator.Validate(); err != nil {
		return fmt.Errorf("discriminator: %w", err)
	}
	if err := c.Validation.Validate(); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	if c.Concurrency.BatchWorkers < 0 {
		return fmt.Errorf("concurrency: batch workers must be non-negative, got %d", c.Concurrency.BatchWorkers)
	}
	return nil
}
