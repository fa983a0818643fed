package ports

import (
	"context"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
)

// RecordSource yields records in source order.
// Next returns io.EOF once the source is exhausted.
type RecordSource interface {
	Next() (domain.Record, error)
}

// RecordSink persists records in the order they are written.
type RecordSink interface {
	Write(record domain.Record) error
	Flush() error
}

// RecordProcessor drives records from a source through a normalizer into a sink.
type RecordProcessor interface {
	Process(ctx context.Context, source RecordSource, sink RecordSink) (domain.Stats, error)
}
