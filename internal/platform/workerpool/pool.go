// Package workerpool implements a bounded worker pool shaped like a
// Java ThreadPoolExecutor: a small core of always-running named workers,
// a bounded queue, and caller-runs back-pressure once both are saturated.
// The screening orchestrator is its only consumer.
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobber-ats/core/internal/platform/logger"
	"golang.org/x/sync/semaphore"
	"go.uber.org/zap"
)

// Pool runs submitted jobs on a bounded set of named goroutines.
type Pool struct {
	core  int
	max   int
	queue chan job
	sem   *semaphore.Weighted
	log   *logger.Logger

	wg       sync.WaitGroup
	mu       sync.Mutex
	draining bool
}

type job struct {
	fn func(ctx context.Context)
}

// New creates a pool with core always-on workers, up to max concurrent
// workers under load, and a bounded queue of the given size.
func New(core, max, queueSize int, log *logger.Logger) *Pool {
	overflow := max - core
	if overflow < 0 {
		overflow = 0
	}

	p := &Pool{
		core:  core,
		max:   max,
		queue: make(chan job, queueSize),
		sem:   semaphore.NewWeighted(int64(overflow)),
		log:   log,
	}

	for i := 0; i < core; i++ {
		p.startWorker(i)
	}

	return p
}

func (p *Pool) startWorker(id int) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		name := fmt.Sprintf("screening-worker-%d", id)
		for j := range p.queue {
			p.run(name, j)
		}
	}()
}

func (p *Pool) run(name string, j job) {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.WithAction(name).Error("worker panic recovered", zap.Any("panic", r))
		}
	}()
	j.fn(ctx)
	p.log.WithAction(name).WithDuration(time.Since(start).Milliseconds()).Debug("job completed")
}

// Submit enqueues fn for asynchronous execution. If the queue is full and
// the pool is already at max concurrency, fn runs synchronously on the
// calling goroutine instead (caller-runs back-pressure). The mutex
// serializes submission against Shutdown so a job is never sent on a
// queue that is concurrently being closed.
func (p *Pool) Submit(fn func(ctx context.Context)) {
	p.mu.Lock()
	if p.draining {
		p.mu.Unlock()
		fn(context.Background())
		return
	}

	select {
	case p.queue <- job{fn: fn}:
		p.mu.Unlock()
		return
	default:
	}
	p.mu.Unlock()

	if p.sem.TryAcquire(1) {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			defer p.sem.Release(1)
			p.run("screening-worker-overflow", job{fn: fn})
		}()
		return
	}

	fn(context.Background())
}

// Shutdown stops accepting new work and waits up to grace for in-flight
// and queued work to drain before returning.
func (p *Pool) Shutdown(grace time.Duration) {
	p.mu.Lock()
	p.draining = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(grace):
		p.log.Warn("workerpool shutdown grace period elapsed with work still in flight")
	}
}
