package issuance

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	batchmodel "github.com/sunthewhat/academic-cert-api/api/model/batchModel"
)

var ErrQueueFull = errors.New("issuance queue is full")

// Runner is what the pool executes; *Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, req Request) (*Summary, error)
}

type job struct {
	report *batchmodel.BatchReport
	req    Request
}

// Pool runs large uploads off the request path. Progress and the final
// summary are written to the batch report so clients can poll for them.
type Pool struct {
	runner  Runner
	batches batchmodel.IBatchRepository
	jobs    chan job
	workers int
	now     func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewPool(runner Runner, batches batchmodel.IBatchRepository, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		runner:  runner,
		batches: batches,
		jobs:    make(chan job, queueSize),
		workers: workers,
		now:     time.Now,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	slog.Info("Starting issuance workers", "workers", p.workers)
	for i := range p.workers {
		p.wg.Add(1)
		go func(workerID int) {
			defer p.wg.Done()
			for j := range p.jobs {
				p.process(ctx, workerID, j)
			}
		}(i)
	}
}

// Stop lets queued batches finish and waits for the workers.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
}

// Submit records report as queued and hands the request to a worker. The
// worker owns a copy; report is not touched after Submit returns.
func (p *Pool) Submit(report *batchmodel.BatchReport, req Request) error {
	report.Status = batchmodel.StatusQueued
	report.Variant = req.Variant
	report.Rows = req.Sheet.Len()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = p.now()
	}
	if err := p.batches.Create(report); err != nil {
		return err
	}

	owned := *report
	select {
	case p.jobs <- job{report: &owned, req: req}:
		return nil
	default:
		p.finish(report, nil, ErrQueueFull)
		return ErrQueueFull
	}
}

func (p *Pool) process(ctx context.Context, workerID int, j job) {
	slog.Info("Processing issuance batch", "worker", workerID, "batch_id", j.report.ID, "rows", j.report.Rows)

	j.report.Status = batchmodel.StatusRunning
	if err := p.batches.Save(j.report); err != nil {
		slog.Warn("Failed to mark batch running", "batch_id", j.report.ID, "error", err)
	}

	summary, err := p.runner.Run(ctx, j.req)
	p.finish(j.report, summary, err)
}

func (p *Pool) finish(report *batchmodel.BatchReport, summary *Summary, err error) {
	Record(report, summary, err, p.now())
	if saveErr := p.batches.Save(report); saveErr != nil {
		slog.Error("Failed to save batch report", "batch_id", report.ID, "error", saveErr)
	}
}

// Record copies the outcome of a batch into its report.
func Record(report *batchmodel.BatchReport, summary *Summary, err error, at time.Time) {
	report.FinishedAt = &at
	if err != nil {
		report.Status = batchmodel.StatusFailed
		report.Message = err.Error()
		return
	}
	report.Status = batchmodel.StatusCompleted
	report.Variant = summary.Variant
	report.Rows = summary.Rows
	report.Created = summary.Created
	report.Updated = summary.Updated
	report.Errors = summary.Errors
	report.Certificates = summary.Certificates
	report.Message = summary.Message()
}
