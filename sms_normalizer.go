// sms_normalizer.go
// Package smsnormalizer prepares labeled SMS messages for classification.
// Every message runs through a fixed, ordered sequence of regex rewrites that
// replace entities (emails, URLs, money amounts, codes, phone numbers,
// emoticons, age markers) with stable placeholder tokens, space out a few
// symbols and collapse whitespace.
//
// Files are read as tab-separated (label, text) rows without a header and
// written as comma-separated (text, class_attribute) rows with a header.
package smsnormalizer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/stream"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/rules"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
	"github.com/baditaflorin/l"
	"github.com/gofrs/flock"
)

type (
	// Record is one labeled message.
	Record = domain.Record
	// Stats summarizes a processing run.
	Stats = domain.Stats
	// Rule is one named rewrite of the sequence.
	Rule = rules.Rule
	// RuleSet is an immutable ordered list of rules.
	RuleSet = rules.RuleSet
	// Step is the text before and after one rule that changed it.
	Step = rules.Step
	// TryResult is the outcome of trying a pattern on one word.
	TryResult = rules.TryResult
	// NormalizerType selects the normalizer implementation.
	NormalizerType = normalizer.NormalizerType
)

const (
	// DefaultNormalizer applies every rule in order.
	DefaultNormalizer = normalizer.DefaultNormalizerType
	// GuardedNormalizer skips rules whose guard characters are absent.
	GuardedNormalizer = normalizer.GuardedNormalizerType
)

// Default configuration values.
const (
	DefaultBatchSize = 100
	DefaultWorkers   = 0 // one per CPU
)

// ParseNormalizerType maps "default" or "guarded" to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, bool) {
	return normalizer.ParseNormalizerType(name)
}

// DefaultRules returns the built-in rule sequence.
func DefaultRules() *RuleSet {
	return rules.Default()
}

// NewRuleSet validates and builds a custom rule sequence.
func NewRuleSet(list ...Rule) (*RuleSet, error) {
	return rules.NewRuleSet(list...)
}

// Placeholders lists the tokens entities are replaced with.
func Placeholders() []string {
	return domain.Placeholders()
}

// Samples returns the sample words kept for a rule category, or nil.
func Samples(category string) []string {
	return rules.Samples(category)
}

// Try replaces every match of pattern in each word with "OK".
func Try(pattern string, words []string) ([]TryResult, error) {
	return rules.Try(pattern, words)
}

// Config holds configuration options for the normalizer.
type Config struct {
	NormalizerType NormalizerType
	// Workers is the number of goroutines used for files; 0 means one per CPU
	// and 1 processes records sequentially.
	Workers   int
	BatchSize int
	Rules     *RuleSet
	// Logger for tracing processing runs.
	Logger l.Logger
}

// Option defines a functional option for configuring the normalizer.
type Option func(*Config)

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithNormalizerType selects the normalizer implementation.
func WithNormalizerType(t NormalizerType) Option {
	return func(cfg *Config) {
		cfg.NormalizerType = t
	}
}

// WithWorkers sets the number of processing goroutines.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		cfg.Workers = n
	}
}

// WithBatchSize sets how many records a worker handles at once.
func WithBatchSize(n int) Option {
	return func(cfg *Config) {
		cfg.BatchSize = n
	}
}

// WithRuleSet replaces the built-in rule sequence.
func WithRuleSet(set *RuleSet) Option {
	return func(cfg *Config) {
		cfg.Rules = set
	}
}

// SMSNormalizer normalizes single messages and whole files.
type SMSNormalizer struct {
	config     Config
	logger     ports.Logger
	ownsLogger bool
	normalizer ports.Normalizer
	processor  ports.StreamProcessor
}

// New creates a new SMSNormalizer with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*SMSNormalizer, error) {
	cfg := Config{
		NormalizerType: DefaultNormalizer,
		Workers:        DefaultWorkers,
		BatchSize:      DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.Rules == nil {
		cfg.Rules = rules.Default()
	}
	ownsLogger := cfg.Logger == nil
	if ownsLogger {
		lg, err := createDefaultLogger()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		cfg.Logger = lg
	}

	log := logger.FromExisting(cfg.Logger)
	norm := normalizer.NewNormalizerFactory(cfg.Rules).CreateNormalizer(cfg.NormalizerType)

	mode := stream.ParallelProcessor
	if cfg.Workers == 1 {
		mode = stream.SequentialProcessor
	}
	proc := stream.NewProcessorFactory(log).CreateProcessor(mode, norm, stream.ProcessorConfig{
		BatchSize: cfg.BatchSize,
		Workers:   cfg.Workers,
	})

	return &SMSNormalizer{
		config:     cfg,
		logger:     log,
		ownsLogger: ownsLogger,
		normalizer: norm,
		processor:  proc,
	}, nil
}

// Normalize rewrites one message. It never fails.
func (n *SMSNormalizer) Normalize(text string) string {
	return n.normalizer.Normalize(text)
}

// NormalizeRecords returns a copy of records with every text normalized.
func (n *SMSNormalizer) NormalizeRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		rec.Text = n.normalizer.Normalize(rec.Text)
		out[i] = rec
	}
	return out
}

// Rules returns the rule sequence in use.
func (n *SMSNormalizer) Rules() *RuleSet {
	return n.config.Rules
}

// Trace returns the text after every rule that changed it.
func (n *SMSNormalizer) Trace(text string) []Step {
	return n.config.Rules.Trace(text)
}

// TryRule runs a named rule's pattern over words.
func (n *SMSNormalizer) TryRule(name string, words []string) ([]TryResult, error) {
	return n.config.Rules.TryRule(name, words)
}

// Process reads TSV rows from r and writes normalized CSV rows to w.
func (n *SMSNormalizer) Process(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	n.logger.Info("Starting normalization run",
		"normalizer", n.config.NormalizerType.String(),
		"workers", n.config.Workers,
		"batch_size", n.config.BatchSize,
	)

	stats, err := n.processor.ProcessStream(ctx, r, w)
	if err != nil {
		return stats, err
	}

	n.logger.Info("Normalization run finished",
		"records", stats.Records,
		"rewritten", stats.Rewritten,
		"skipped", stats.Skipped,
		"duration", stats.Duration.String(),
	)
	return stats, nil
}

// ProcessFile normalizes the TSV file at inPath into a CSV file at outPath.
// The output is written to a temporary file next to outPath and renamed into
// place on success, so a failed run leaves no partial output behind.
func (n *SMSNormalizer) ProcessFile(ctx context.Context, inPath, outPath string) (stats Stats, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	defer in.Close()

	lock := flock.New(outPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Stats{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return Stats{}, fmt.Errorf("%w: %s", ErrOutputLocked, outPath)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			n.logger.Warn("Failed to release output lock", "path", outPath, "error", unlockErr)
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return Stats{}, fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if chmodErr := tmp.Chmod(0o644); chmodErr != nil {
		n.logger.Debug("Could not set output permissions", "path", tmp.Name(), "error", chmodErr)
	}

	start := time.Now()
	stats, err = n.Process(ctx, in, tmp)
	if err != nil {
		return stats, fmt.Errorf("processing %s: %w", inPath, err)
	}
	if err = tmp.Close(); err != nil {
		return stats, fmt.Errorf("closing output: %w", err)
	}
	if err = os.Rename(tmp.Name(), outPath); err != nil {
		return stats, fmt.Errorf("writing output: %w", err)
	}

	n.logger.Debug("Output file written", "path", outPath, "elapsed", time.Since(start).String())
	return stats, nil
}

// Close flushes and closes the logger if New created it. A logger passed
// with WithLogger stays open and belongs to the caller.
func (n *SMSNormalizer) Close() error {
	if !n.ownsLogger {
		return nil
	}
	return n.logger.Close()
}

// NormalizeWithDefaults is a convenience function that normalizes text with
// the built-in rules and no logging.
func NormalizeWithDefaults(text string) string {
	return defaultNormalizer.Normalize(text)
}

var defaultNormalizer = normalizer.NewNormalizerFactory(nil).CreateNormalizer(normalizer.DefaultNormalizerType)
