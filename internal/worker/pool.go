package worker

import (
	"context"
	"sync"

	"campusnet-service/internal/domain"
	"campusnet-service/internal/logging"
	"campusnet-service/internal/metrics"
	"campusnet-service/internal/timeline"
)

// Pool consumes measurement batches and stores them in the repository and,
// when configured, the timeline store.
type Pool struct {
	repo        domain.MeasurementWriter
	timeline    *timeline.Store
	workerCount int
	logger      *logging.Logger
}

// New creates a pool with the provided sinks and worker count.
func New(workerCount int, repo domain.MeasurementWriter, tl *timeline.Store, logger *logging.Logger) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{repo: repo, timeline: tl, workerCount: workerCount, logger: logger}
}

// Run starts the worker pool and blocks until the context is cancelled or the
// batches channel is closed.
func (p *Pool) Run(ctx context.Context, batches <-chan domain.Batch) {
	var wg sync.WaitGroup
	wg.Add(p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		go func() {
			defer wg.Done()
			metrics.WorkerPoolActiveGoroutines.Inc()
			defer metrics.WorkerPoolActiveGoroutines.Dec()
			p.workerLoop(ctx, batches)
		}()
	}
	wg.Wait()
}

func (p *Pool) workerLoop(ctx context.Context, batches <-chan domain.Batch) {
	for {
		select {
		case <-ctx.Done():
			p.log("worker stopping", "reason", ctx.Err())
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			p.processBatch(ctx, batch)
		}
	}
}

func (p *Pool) processBatch(ctx context.Context, batch domain.Batch) {
	if ctx.Err() != nil {
		p.log("aborting batch", "batch", batch.ID, "reason", ctx.Err())
		return
	}

	if err := p.repo.AddBatch(ctx, batch.Measurements); err != nil {
		metrics.MeasurementStoreErrorsTotal.Inc()
		p.logError("failed to store batch", err, "batch", batch.ID)
		return
	}
	metrics.MeasurementsStoredTotal.Add(float64(len(batch.Measurements)))

	if p.timeline != nil {
		if err := p.timeline.Record(batch.Measurements); err != nil {
			// The repository write already succeeded; the timeline is a
			// secondary index, so a failure here is logged, not fatal.
			p.logError("failed to record batch timeline", err, "batch", batch.ID)
		}
	}

	p.log("stored batch", "batch", batch.ID, "measurements", len(batch.Measurements))
}

func (p *Pool) log(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, args...)
}

func (p *Pool) logError(msg string, err error, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Error(msg, logging.AttachError(err, args...)...)
}

var _ domain.WorkerPool = (*Pool)(nil)
