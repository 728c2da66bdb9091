package events

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int

	// QueueSize is the buffer of jobs waiting for a worker
	// If zero or negative, defaults to WorkerCount
	QueueSize int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 4,
		QueueSize:   256,
	}
}

// WorkerPool runs async event deliveries on a fixed set of goroutines.
// Submit never blocks: when the queue is full the job gets its own goroutine.
type WorkerPool struct {
	jobs chan func()

	// mu guards stopped and the close of jobs
	mu      sync.RWMutex
	stopped bool

	// workers tracks pool goroutines, overflow tracks jobs that spilled past the queue
	workers  sync.WaitGroup
	overflow sync.WaitGroup

	workerCount int
	logger      *slog.Logger
}

// NewWorkerPool creates a worker pool and starts its workers.
func NewWorkerPool(config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	logger = logger.With("component", "event_worker_pool")

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = workerCount
	}

	p := &WorkerPool{
		jobs:        make(chan func(), queueSize),
		workerCount: workerCount,
		logger:      logger,
	}

	for i := 0; i < workerCount; i++ {
		p.workers.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit queues job for execution.
func (p *WorkerPool) Submit(job func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.logger.Warn("worker pool stopped, running delivery untracked")
		go p.run(job)
		return
	}

	select {
	case p.jobs <- job:
		return
	default:
		p.logger.Warn("async queue full, running delivery on a dedicated goroutine",
			"queue_cap", cap(p.jobs))
	}

	p.overflow.Add(1)
	go func() {
		defer p.overflow.Done()
		p.run(job)
	}()
}

// Stop stops accepting queued work and waits for queued and running jobs to
// finish, or for ctx to be done.
func (p *WorkerPool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		p.overflow.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool drained")
		return nil
	case <-ctx.Done():
		p.logger.Warn("worker pool stop timed out with jobs still running")
		return ctx.Err()
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.workers.Done()

	p.logger.Debug("starting worker", "worker_id", id)
	for job := range p.jobs {
		p.run(job)
	}
	p.logger.Debug("job channel closed, stopping worker", "worker_id", id)
}

// run executes job and keeps a panicking job from taking the worker down.
func (p *WorkerPool) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("async job panicked", "panic", r)
		}
	}()
	job()
}
