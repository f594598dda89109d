// Package config provides configuration management for the digest worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingArchiveBase       = errors.New("fetch.archive_base is required")
	ErrInvalidDays              = errors.New("fetch.days must be at least 1")
	ErrInvalidFetchDelay        = errors.New("fetch.delay_ms must be non-negative")
	ErrInvalidMinContentLen     = errors.New("fetch.min_content_len must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingModel             = errors.New("transform model name is required")
	ErrInvalidBatchSize         = errors.New("transform.batch_size must be at least 1")
	ErrInvalidDefaultLimit      = errors.New("selection.default_limit must be at least 1")
	ErrNegativeLimit            = errors.New("selection limit must be non-negative")
	ErrMissingOutputDir         = errors.New("output.dir is required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete digest worker configuration.
type Config struct {
	Digest   DigestConfig   `yaml:"digest"`
	Features FeaturesConfig `yaml:"features"`
}

// DigestConfig contains pipeline-specific settings.
type DigestConfig struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Retry     RetryPolicy     `yaml:"retry"`
	Transform TransformConfig `yaml:"transform"`
	Selection SelectionConfig `yaml:"selection"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FetchConfig defines how newsletter issues are downloaded.
type FetchConfig struct {
	ArchiveBase   string `yaml:"archive_base"`
	ReaderPrefix  string `yaml:"reader_prefix"`
	UserAgent     string `yaml:"user_agent"`
	DelayMs       int    `yaml:"delay_ms"`
	Days          int    `yaml:"days"`
	MinContentLen int    `yaml:"min_content_len"`
}

// GetDelay returns the politeness delay between requests.
func (f *FetchConfig) GetDelay() time.Duration {
	return time.Duration(f.DelayMs) * time.Millisecond
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// TransformConfig names the models used by the text transform service.
type TransformConfig struct {
	CleanModel     string `yaml:"clean_model"`
	SelectModel    string `yaml:"select_model"`
	TranslateModel string `yaml:"translate_model"`
	BatchSize      int    `yaml:"batch_size"`
}

// SelectionConfig caps how many items survive rank-selection per section.
type SelectionConfig struct {
	DefaultLimit int                     `yaml:"default_limit"`
	Limits       map[string]SectionLimit `yaml:"limits"`
}

// SectionLimit is either a bare item count or a mapping of subcategory
// names to counts. Both YAML shapes are accepted:
//
//	limits:
//	  HIGHLIGHTS: 3
//	  BUSINESS:
//	    Funding & Investment: 4
type SectionLimit struct {
	Count         int
	Subcategories map[string]int

	scalar bool
}

// LimitCount builds a flat per-section limit.
func LimitCount(n int) SectionLimit {
	return SectionLimit{Count: n, scalar: true}
}

// LimitBySubcategory builds a per-subcategory limit map.
func LimitBySubcategory(m map[string]int) SectionLimit {
	return SectionLimit{Subcategories: m}
}

// UnmarshalYAML decodes either shape.
func (s *SectionLimit) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if err := value.Decode(&s.Count); err != nil {
			return err
		}
		s.scalar = true
		return nil
	case yaml.MappingNode:
		return value.Decode(&s.Subcategories)
	default:
		return fmt.Errorf("selection limit must be a number or a mapping (line %d)", value.Line)
	}
}

// MarshalYAML emits the same shape that was configured.
func (s SectionLimit) MarshalYAML() (interface{}, error) {
	if s.scalar {
		return s.Count, nil
	}
	return s.Subcategories, nil
}

// LimitFor returns the configured item cap for a section, or for one of
// its subcategories when subcategory is non-empty. Unconfigured paths fall
// back to DefaultLimit. A scalar section limit never applies to subcategory
// lookups; grouped sections need explicit per-subcategory entries.
func (s *SelectionConfig) LimitFor(section, subcategory string) int {
	sl, ok := s.Limits[section]
	if !ok {
		return s.DefaultLimit
	}

	if subcategory != "" {
		if sl.scalar {
			return s.DefaultLimit
		}
		if n, ok := sl.Subcategories[subcategory]; ok {
			return n
		}
		return s.DefaultLimit
	}

	if !sl.scalar {
		return s.DefaultLimit
	}

	return sl.Count
}

// OutputConfig defines where pipeline artifacts are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	SignDocuments bool `yaml:"sign_documents"`
	SkipVerified  bool `yaml:"skip_verified"`
	KeepProgress  bool `yaml:"keep_progress"`
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the built-in configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Digest: DigestConfig{
			Fetch: FetchConfig{
				ArchiveBase:   "https://buttondown.com/agent-k/archive",
				ReaderPrefix:  "https://r.jina.ai/",
				UserAgent:     "Mozilla/5.0 (compatible; LLM-Daily-Downloader/1.0)",
				DelayMs:       1000,
				Days:          7,
				MinContentLen: 100,
			},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        8000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Transform: TransformConfig{
				CleanModel:     "gemini-2.5-flash",
				SelectModel:    "gemini-2.5-pro",
				TranslateModel: "gemini-2.5-flash",
				BatchSize:      8,
			},
			Selection: SelectionConfig{
				DefaultLimit: 5,
			},
			Output: OutputConfig{
				Dir:         ".",
				PrettyPrint: true,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
		Features: FeaturesConfig{
			SignDocuments: true,
			SkipVerified:  true,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate fetch config
	if c.Digest.Fetch.ArchiveBase == "" {
		return ErrMissingArchiveBase
	}

	if c.Digest.Fetch.Days < 1 {
		return ErrInvalidDays
	}

	if c.Digest.Fetch.DelayMs < 0 {
		return ErrInvalidFetchDelay
	}

	if c.Digest.Fetch.MinContentLen < 0 {
		return ErrInvalidMinContentLen
	}

	// Validate retry policy
	if c.Digest.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Digest.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Digest.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Digest.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate transform config
	models := map[string]string{
		"transform.clean_model":     c.Digest.Transform.CleanModel,
		"transform.select_model":    c.Digest.Transform.SelectModel,
		"transform.translate_model": c.Digest.Transform.TranslateModel,
	}

	for name, model := range models {
		if model == "" {
			return fmt.Errorf("%w: %s", ErrMissingModel, name)
		}
	}

	if c.Digest.Transform.BatchSize < 1 {
		return ErrInvalidBatchSize
	}

	// Validate selection config
	if c.Digest.Selection.DefaultLimit < 1 {
		return ErrInvalidDefaultLimit
	}

	for section, sl := range c.Digest.Selection.Limits {
		if sl.scalar {
			if sl.Count < 0 {
				return fmt.Errorf("%w: %s", ErrNegativeLimit, section)
			}
			continue
		}
		for sub, n := range sl.Subcategories {
			if n < 0 {
				return fmt.Errorf("%w: %s/%s", ErrNegativeLimit, section, sub)
			}
		}
	}

	// Validate output config
	if c.Digest.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Digest.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if f := c.Digest.Logging.Format; f != "" && f != "text" && f != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-attempt timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Days: %d, MaxAttempts: %d, Output: %s}",
		c.Digest.Fetch.Days,
		c.Digest.Retry.MaxAttempts,
		c.Digest.Output.Dir,
	)
}
