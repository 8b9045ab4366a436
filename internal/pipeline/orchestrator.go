// Package pipeline runs document imports asynchronously: uploads become
// jobs, workers parse them into slide drafts, callers poll job state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/transudeck/transudeck/internal/chunker"
	"github.com/transudeck/transudeck/internal/config"
)

const jobSweepInterval = 5 * time.Minute

// Orchestrator owns the job queue, the worker pool and the job store.
type Orchestrator struct {
	cfg      config.Config
	chunkCfg chunker.Config
	clients  ClientSource
	log      *slog.Logger

	jobs  *JobStore
	queue chan *Job

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, clients ClientSource, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg: cfg,
		chunkCfg: chunker.Config{
			ChunkSize:    cfg.DefaultChunkSize,
			ChunkOverlap: cfg.DefaultChunkOverlap,
			MinChunk:     100,
		},
		clients: clients,
		log:     log,
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
	}
}

// Start launches the worker pool and the job store sweeper.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, o.cancel = context.WithCancel(ctx)

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go o.runWorker(ctx)
	}

	o.wg.Add(1)
	go o.sweepJobs(ctx)
}

func (o *Orchestrator) runWorker(ctx context.Context) {
	defer o.wg.Done()
	w := NewWorker(o.clients, o.log, o.chunkCfg, o.cfg.PDFFallbackPdftotext)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-o.queue:
			if !ok {
				return
			}
			w.Process(ctx, job)
		}
	}
}

func (o *Orchestrator) sweepJobs(ctx context.Context) {
	defer o.wg.Done()
	ticker := time.NewTicker(jobSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.jobs.Cleanup()
		}
	}
}

// Stop drains the pool and waits for in-flight jobs to settle. Safe to
// call more than once.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Lock()
	if !o.stopped {
		o.stopped = true
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// Submit registers the job and queues it without blocking. A full queue
// or a stopped pipeline fails the job immediately so the caller can
// report it.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("pipeline is shutting down")
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth reports how many jobs are waiting for a worker.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
