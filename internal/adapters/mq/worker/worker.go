// Package worker drains table rows from the queue, scores them and adds the
// resulting observations to the aggregation store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/profession"
	"github.com/okian/delfos/internal/domain/scoring"
	"github.com/okian/delfos/pkg/logger"
	"github.com/okian/delfos/pkg/metrics"
)

// Event abstracts what workers read off the queue.
type Event = model.Row

// Updater accumulates observations into profession buckets.
type Updater interface {
	Add(ctx context.Context, professions []profession.ID, match model.ElementMatch) error
}

// Scorer turns a row into an observation or a skip.
type Scorer interface {
	Score(ctx context.Context, row model.Row) (scoring.Result, error)
}

// Queue defines how workers receive rows.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes rows until the queue channel is closed.
type Worker interface {
	// Run processes rows until the queue is drained or ctx is canceled.
	Run(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue   Queue
	scorer  Scorer
	updater Updater
	name    string
	stats   *Stats

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, scorer Scorer, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:   queue,
		scorer:  scorer,
		updater: updater,
		name:    "worker",
		stats:   NewStats(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run implements Worker. The first scoring or update failure stops the worker
// and is returned.
func (w *InMemoryWorker) Run(ctx context.Context) error {
	rows := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case row, ok := <-rows:
			if !ok {
				return nil
			}
			if err := w.processEvent(ctx, row); err != nil {
				w.logger.Error(ctx, "error processing row",
					logger.String("table", row.Table),
					logger.Int("line", row.Line),
					logger.Error(err),
				)
				return err
			}
		}
	}
}

// processEvent handles a single row.
func (w *InMemoryWorker) processEvent(ctx context.Context, row Event) error { //nolint:gocritic // hugeParam: Event must be passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(time.Since(start).Seconds())
	}()

	w.stats.recordProcessed()

	res, err := w.scorer.Score(ctx, row)
	if err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("score %s line %d: %w", row.Table, row.Line, err)
	}

	if !res.Contributes() {
		w.stats.recordSkip(res.Skip)
		metrics.RecordRowSkipped(row.Table, string(res.Skip))
		w.logger.Debug(ctx, "row skipped",
			logger.String("table", row.Table),
			logger.Int("line", row.Line),
			logger.String("reason", string(res.Skip)),
		)
		return nil
	}

	if err := w.updater.Add(ctx, res.Professions, res.Match); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("aggregate %s line %d: %w", row.Table, row.Line, err)
	}
	w.stats.recordContribution()
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	stats   *Stats

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	errOnce sync.Once
	err     error

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive count uses one worker per CPU.
func NewPool(workerCount int, queue Queue, scorer Scorer, updater Updater) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		stats:   NewStats(),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			scorer,
			updater,
			WithName("worker-"+strconv.Itoa(i)),
			withStats(pool.stats),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool. The first worker failure stops the
// remaining workers.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				p.errOnce.Do(func() {
					p.err = err
					p.cancel()
				})
			}
		}(w)
	}
}

// Wait blocks until every worker has returned, which happens once the queue
// is closed and drained, and returns the first worker failure.
func (p *Pool) Wait() error {
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	if p.err != nil {
		return p.err
	}
	p.logger.Debug(context.Background(), "worker pool drained",
		logger.Int("processed", int(p.stats.Processed())),
		logger.Int("contributed", int(p.stats.Contributed())),
	)
	return nil
}

// Stats returns the pool's counters.
func (p *Pool) Stats() *Stats { return p.stats }
