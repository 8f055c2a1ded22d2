// Package config defines run configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/classify"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/profession"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Debug forces debug logging regardless of LogLevel.
	Debug bool `koanf:"debug"`

	// SourceDir holds the O*NET text tables.
	SourceDir string `koanf:"source_dir"`

	// OutputFile is where the artifact is written.
	OutputFile string `koanf:"output_file"`

	// Tables lists the table files to read, in canonical order.
	Tables []string `koanf:"tables"`

	// WorkerCount sets the number of aggregation workers. Zero means one per CPU.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory row queue.
	QueueSize int `koanf:"queue_size"`

	// ShardCount configures the number of shards in the aggregation store.
	ShardCount int `koanf:"shard_count"`

	// MetricsFile receives a Prometheus textfile after a successful run.
	// Empty disables it.
	MetricsFile string `koanf:"metrics_file"`

	// Professions replaces the built-in profession -> codes table when set.
	Professions map[string][]string `koanf:"professions"`

	// Rules replaces the built-in classification rules when set. Order matters.
	Rules []Rule `koanf:"rules"`
}

// Rule is the configuration form of a classification rule.
type Rule struct {
	Pattern  string `koanf:"pattern"`
	Aptitude string `koanf:"aptitude"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		SourceDir:   "../db_30_0_text",
		OutputFile:  "data/onet_processed.json",
		Tables:      model.KnownTables(),
		WorkerCount: runtime.NumCPU(),
		QueueSize:   10_000,
		ShardCount:  8,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return fmt.Errorf("%w: source_dir must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("%w: output_file must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("%w: worker_count must not be negative", ErrInvalidConfig)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: queue_size must not be negative", ErrInvalidConfig)
	}
	if c.ShardCount < 0 {
		return fmt.Errorf("%w: shard_count must not be negative", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Tables))
	for _, t := range c.Tables {
		if _, err := model.LookupSchema(t); err != nil {
			return fmt.Errorf("%w: tables: %w", ErrInvalidConfig, err)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: tables: %s listed more than once", ErrInvalidConfig, t)
		}
		seen[t] = struct{}{}
	}
	for i, r := range c.Rules {
		if _, err := aptitude.Parse(r.Aptitude); err != nil {
			return fmt.Errorf("%w: rules[%d]: %w", ErrInvalidConfig, i, err)
		}
		if r.Pattern == "" {
			return fmt.Errorf("%w: rules[%d]: empty pattern", ErrInvalidConfig, i)
		}
		if _, err := regexp.Compile("(?i)" + r.Pattern); err != nil {
			return fmt.Errorf("%w: rules[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	for id, codes := range c.Professions {
		if len(codes) == 0 {
			return fmt.Errorf("%w: professions.%s: %w", ErrInvalidConfig, id, profession.ErrEmptyCodes)
		}
	}
	return nil
}

// Classifier builds the classifier from Rules, or the built-in rules when
// none are configured.
func (c *Config) Classifier() (*classify.Classifier, error) {
	if len(c.Rules) == 0 {
		return classify.Default(), nil
	}
	rules := make([]classify.Rule, len(c.Rules))
	for i, r := range c.Rules {
		apt, err := aptitude.Parse(r.Aptitude)
		if err != nil {
			return nil, fmt.Errorf("%w: rules[%d]: %w", ErrInvalidConfig, i, err)
		}
		rules[i] = classify.Rule{Pattern: r.Pattern, Aptitude: apt}
	}
	cl, err := classify.New(rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cl, nil
}

// ProfessionTable builds the profession table from Professions, or the
// built-in table when none is configured.
func (c *Config) ProfessionTable() (profession.Table, error) {
	if len(c.Professions) == 0 {
		return profession.Default(), nil
	}
	t, err := profession.FromMap(c.Professions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return t, nil
}

// EffectiveLogLevel returns the level to apply, honoring Debug.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
