package events

import (
	"context"
	"sync"
)

type pendingKey struct{}

// PendingAsync buffers async deliveries published under a context returned by
// DeferAsync. Services use it to hold async work until their transaction
// commits:
//
//	ctx, async := events.DeferAsync(ctx)
//	if err := uow.RunInTx(ctx, fn); err != nil {
//		async.Discard()
//		return ...
//	}
//	async.Release()
type PendingAsync struct {
	mu     sync.Mutex
	jobs   []heldJob
	done   bool
	nested bool
}

type heldJob struct {
	scheduler Scheduler
	run       func()
}

// DeferAsync returns a context under which async deliveries are buffered in
// the returned PendingAsync instead of being scheduled. If ctx is already
// deferring, the outer collector keeps ownership and the returned one's
// Release and Discard do nothing.
func DeferAsync(ctx context.Context) (context.Context, *PendingAsync) {
	if pendingFrom(ctx) != nil {
		return ctx, &PendingAsync{nested: true, done: true}
	}
	p := &PendingAsync{}
	return context.WithValue(ctx, pendingKey{}, p), p
}

func pendingFrom(ctx context.Context) *PendingAsync {
	p, _ := ctx.Value(pendingKey{}).(*PendingAsync)
	return p
}

// hold buffers job. It returns false once the collector has been released
// or discarded, in which case the caller schedules the job itself.
func (p *PendingAsync) hold(s Scheduler, job func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return false
	}
	p.jobs = append(p.jobs, heldJob{scheduler: s, run: job})
	return true
}

// Release schedules every buffered delivery in publish order.
func (p *PendingAsync) Release() {
	for _, job := range p.drain() {
		job.scheduler.Submit(job.run)
	}
}

// Discard drops every buffered delivery.
func (p *PendingAsync) Discard() {
	p.drain()
}

// Len returns the number of buffered deliveries.
func (p *PendingAsync) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

func (p *PendingAsync) drain() []heldJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nested {
		return nil
	}
	jobs := p.jobs
	p.jobs = nil
	p.done = true
	return jobs
}
