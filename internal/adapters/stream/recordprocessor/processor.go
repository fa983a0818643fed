package recordprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
)

// Constants for record processing
const (
	// DefaultBatchSize defines how many records a worker normalizes per job
	DefaultBatchSize = 100

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // records
)

// ProcessingConfig defines configuration for record processing
type ProcessingConfig struct {
	BatchSize int
	// Workers is the number of normalizing goroutines in parallel mode.
	// Zero means runtime.NumCPU().
	Workers     int
	UseParallel bool
}

// Processor normalizes the text of every record between a source and a sink.
type Processor struct {
	logger     ports.Logger
	normalizer ports.Normalizer

	// Configuration
	batchSize   int
	workers     int
	useParallel bool
}

// skipCounter is implemented by sources that drop blank input lines.
type skipCounter interface {
	Skipped() int
}

var _ ports.RecordProcessor = (*Processor)(nil)

// NewProcessor creates a new record processor
func NewProcessor(
	logger ports.Logger,
	normalizer ports.Normalizer,
	config ProcessingConfig,
) *Processor {
	// Use defaults if not specified
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	return &Processor{
		logger:      logger,
		normalizer:  normalizer,
		batchSize:   config.BatchSize,
		workers:     config.Workers,
		useParallel: config.UseParallel,
	}
}

// Process reads every record from source, normalizes its text and writes it
// to sink in source order. The sink is flushed on success.
func (p *Processor) Process(
	ctx context.Context,
	source ports.RecordSource,
	sink ports.RecordSink,
) (domain.Stats, error) {
	startTime := time.Now()

	var (
		stats domain.Stats
		err   error
	)
	if p.useParallel && p.workers > 1 {
		stats, err = p.processParallel(ctx, source, sink)
	} else {
		stats, err = p.processSequential(ctx, source, sink)
	}
	if sc, ok := source.(skipCounter); ok {
		stats.Skipped = sc.Skipped()
	}
	stats.Duration = time.Since(startTime)
	if err != nil {
		return stats, err
	}

	if err := sink.Flush(); err != nil {
		return stats, fmt.Errorf("flushing output: %w", err)
	}

	// Final logging
	p.logger.Debug("Record processing completed",
		"records", stats.Records,
		"rewritten", stats.Rewritten,
		"skipped", stats.Skipped,
		"parallel", p.useParallel,
		"duration", stats.Duration,
	)

	return stats, nil
}

// processSequential normalizes records one at a time on the calling goroutine
func (p *Processor) processSequential(
	ctx context.Context,
	source ports.RecordSource,
	sink ports.RecordSink,
) (domain.Stats, error) {
	var stats domain.Stats

	for n := 0; ; n++ {
		// Periodically check context for cancellation
		if n%ContextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				p.logger.Warn("Processing cancelled by context", "error", err)
				return stats, err
			}
		}

		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}

		if p.normalize(&rec) {
			stats.Rewritten++
		}
		if err := sink.Write(rec); err != nil {
			return stats, fmt.Errorf("writing record from line %d: %w", rec.Line, err)
		}
		stats.Records++
	}
}

// normalize rewrites the record's text and reports whether it changed
func (p *Processor) normalize(rec *domain.Record) bool {
	normalized := p.normalizer.Normalize(rec.Text)
	changed := normalized != rec.Text
	rec.Text = normalized
	return changed
}
