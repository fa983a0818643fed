package stream

import (
	"context"
	"io"

	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/records"
	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/stream/recordprocessor"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
)

// ProcessorMode defines different processor implementations
type ProcessorMode int

const (
	// SequentialProcessor normalizes records on the calling goroutine
	SequentialProcessor ProcessorMode = iota

	// ParallelProcessor normalizes batches of records on a worker pool
	ParallelProcessor
)

// ProcessorConfig defines configuration for creating processors
type ProcessorConfig struct {
	BatchSize int
	Workers   int
}

// ProcessorFactory creates stream processors sharing one logger
type ProcessorFactory struct {
	logger ports.Logger
}

// NewProcessorFactory creates a new processor factory
func NewProcessorFactory(logger ports.Logger) *ProcessorFactory {
	return &ProcessorFactory{
		logger: logger,
	}
}

// CreateProcessor creates a TSV-to-CSV stream processor around the normalizer
func (f *ProcessorFactory) CreateProcessor(
	mode ProcessorMode,
	norm ports.Normalizer,
	config ProcessorConfig,
) ports.StreamProcessor {
	proc := recordprocessor.NewProcessor(
		f.logger,
		norm,
		recordprocessor.ProcessingConfig{
			BatchSize:   config.BatchSize,
			Workers:     config.Workers,
			UseParallel: mode == ParallelProcessor,
		},
	)
	return NewTSVStreamProcessor(f.logger, proc)
}

// TSVStreamProcessor reads labeled TSV rows and writes normalized CSV rows
type TSVStreamProcessor struct {
	logger    ports.Logger
	processor ports.RecordProcessor
}

// NewTSVStreamProcessor creates a stream processor on top of a record processor
func NewTSVStreamProcessor(logger ports.Logger, processor ports.RecordProcessor) *TSVStreamProcessor {
	return &TSVStreamProcessor{
		logger:    logger,
		processor: processor,
	}
}

// ProcessStream normalizes every row of reader into writer
func (sp *TSVStreamProcessor) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (domain.Stats, error) {
	loader := records.NewTSVLoader(reader)
	defer loader.Close()

	sink := records.NewCSVWriter(writer)
	stats, err := sp.processor.Process(ctx, loader, sink)
	if err != nil {
		sp.logger.Error("Stream processing failed", "error", err, "records", stats.Records)
		return stats, err
	}

	sp.logger.Debug("Stream processed",
		"bytes_read", loader.BytesRead(),
		"rows_written", sink.Rows(),
	)
	return stats, nil
}
