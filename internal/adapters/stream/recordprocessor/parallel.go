package recordprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
	"golang.org/x/sync/errgroup"
)

// MaxJobQueueSize limits the number of pending jobs
const MaxJobQueueSize = 32

// recordJob is a batch of records normalized by a single worker
type recordJob struct {
	records   []domain.Record
	batchID   int
	rewritten int
}

// processParallel fans batches out to a worker pool and writes the
// results back in source order
func (p *Processor) processParallel(
	ctx context.Context,
	source ports.RecordSource,
	sink ports.RecordSink,
) (domain.Stats, error) {
	var stats domain.Stats

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// Create channels for job distribution and result collection
	jobs := make(chan recordJob, MaxJobQueueSize)
	results := make(chan recordJob, p.workers)

	// Read and batch records
	g.Go(func() error {
		defer close(jobs)
		return p.readBatches(gctx, source, jobs)
	})

	// Start worker goroutines
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return p.recordWorker(gctx, jobs, results)
		})
	}

	// Close the results channel when all workers are done
	go func() {
		wg.Wait()
		close(results)
	}()

	// Write batches in order, holding back any that arrive early
	var writeErr error
	pending := make(map[int]recordJob)
	nextID := 0
	for job := range results {
		if writeErr != nil {
			continue
		}
		pending[job.batchID] = job
		for {
			ready, ok := pending[nextID]
			if !ok {
				break
			}
			delete(pending, nextID)
			nextID++

			if err := p.writeBatch(sink, ready, &stats); err != nil {
				writeErr = err
				cancel()
				break
			}
		}
	}

	err := g.Wait()
	if writeErr != nil {
		return stats, writeErr
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			p.logger.Warn("Processing cancelled by context", "error", err)
		}
		return stats, err
	}
	return stats, nil
}

// readBatches groups source records into jobs of batchSize records
func (p *Processor) readBatches(ctx context.Context, source ports.RecordSource, jobs chan<- recordJob) error {
	batchID := 0
	batch := make([]domain.Record, 0, p.batchSize)

	send := func() error {
		select {
		case jobs <- recordJob{records: batch, batchID: batchID}:
			batchID++
			batch = make([]domain.Record, 0, p.batchSize)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for n := 0; ; n++ {
		if n%ContextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			if len(batch) > 0 {
				return send()
			}
			return nil
		}
		if err != nil {
			return err
		}

		batch = append(batch, rec)
		if len(batch) == p.batchSize {
			if err := send(); err != nil {
				return err
			}
		}
	}
}

// recordWorker normalizes batches until the job channel is closed
func (p *Processor) recordWorker(ctx context.Context, jobs <-chan recordJob, results chan<- recordJob) error {
	for job := range jobs {
		for i := range job.records {
			if p.normalize(&job.records[i]) {
				job.rewritten++
			}
		}

		select {
		case results <- job:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// writeBatch writes a finished batch to the sink
func (p *Processor) writeBatch(sink ports.RecordSink, job recordJob, stats *domain.Stats) error {
	for _, rec := range job.records {
		if err := sink.Write(rec); err != nil {
			return fmt.Errorf("writing record from line %d: %w", rec.Line, err)
		}
		stats.Records++
	}
	stats.Rewritten += job.rewritten
	return nil
}
