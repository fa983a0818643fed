package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
)

// StreamProcessor defines the interface for normalizing a labeled record stream
type StreamProcessor interface {
	// ProcessStream reads records from reader and writes normalized records to writer
	ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (domain.Stats, error)
}
