// Package schedule distributes work items across a bounded pool of
// fetching workers.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lfcamargo/pricewatch/fetch"
	"github.com/lfcamargo/pricewatch/models"
	"github.com/lfcamargo/pricewatch/sink"
)

// SessionFactory creates one fetch session per worker.
type SessionFactory func() (fetch.Session, error)

// Runner processes one work item into its records. Implementations decide
// how many pages one item costs.
type Runner interface {
	Process(ctx context.Context, paced *fetch.Paced, item models.WorkItem) []*models.Record
}

// Pool runs a fixed number of workers over a shared queue of work items.
// Each worker owns its session for its whole lifetime, so per-worker state
// such as cookies and pacing survives across items.
type Pool struct {
	workers int
	factory SessionFactory
	paced   fetch.PacedOptions
	runner  Runner
	sink    *sink.Sink
	logger  *slog.Logger
	metrics *fetch.Metrics
}

// PoolOptions configures a pool.
type PoolOptions struct {
	Workers        int
	SessionFactory SessionFactory
	PacedOptions   fetch.PacedOptions
	Runner         Runner
	Sink           *sink.Sink
	Logger         *slog.Logger
	Metrics        *fetch.Metrics
}

// NewPool builds a pool. Workers below 1 are raised to 1.
func NewPool(opts PoolOptions) *Pool {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		workers: workers,
		factory: opts.SessionFactory,
		paced:   opts.PacedOptions,
		runner:  opts.Runner,
		sink:    opts.Sink,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// Run processes all items and returns the run summary. Cancellation stops
// dequeuing promptly; items already being processed finish and their
// records are kept. Run returns an error only when no worker could start.
func (p *Pool) Run(ctx context.Context, items []models.WorkItem) (models.RunSummary, error) {
	start := time.Now().UTC()
	p.metrics.CountItems(len(items))

	queue := make(chan models.WorkItem, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	var wg sync.WaitGroup
	var startMu sync.Mutex
	started := 0

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			session, err := p.factory()
			if err != nil {
				p.logger.Error("worker failed to start session", "worker", id, "error", err)
				return
			}
			defer session.Close()

			startMu.Lock()
			started++
			startMu.Unlock()

			paced := fetch.NewPaced(session, p.paced)
			p.work(ctx, id, paced, queue)
		}(i)
	}
	wg.Wait()

	if started == 0 && len(items) > 0 {
		return models.RunSummary{}, fmt.Errorf("no worker could start a session")
	}

	return p.sink.Summary(len(items), start, time.Now().UTC()), nil
}

func (p *Pool) work(ctx context.Context, id int, paced *fetch.Paced, queue <-chan models.WorkItem) {
	for {
		// Cancellation wins over a ready queue.
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping", "worker", id, "reason", ctx.Err())
			return
		default:
		}

		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping", "worker", id, "reason", ctx.Err())
			return
		case item, ok := <-queue:
			if !ok {
				return
			}
			records := p.runner.Process(ctx, paced, item)
			p.sink.Append(records...)
			p.logger.Debug("item processed", "worker", id, "item", string(item), "records", len(records))
		}
	}
}
