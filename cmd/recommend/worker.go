package main

import (
	"context"
	"log/slog"
	"sync"
)

type Job struct {
	Index int
	Query string
}

type Outcome struct {
	Query  string `json:"query"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WorkerPool runs queries concurrently and keeps the outcomes in submission
// order.
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler func(ctx context.Context, query string) (any, error)

	mu       sync.Mutex
	outcomes map[int]Outcome
}

func NewWorkerPool(ctx context.Context, maxWorkers, queueSize int, handler func(ctx context.Context, query string) (any, error)) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		jobs:     make(chan Job, queueSize),
		ctx:      poolCtx,
		cancel:   cancel,
		handler:  handler,
		outcomes: make(map[int]Outcome),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (w *WorkerPool) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.jobs:
			if !ok {
				return
			}
			w.process(job)
		}
	}
}

func (w *WorkerPool) process(job Job) {
	outcome := Outcome{Query: job.Query}

	res, err := w.handler(w.ctx, job.Query)
	if err != nil {
		slog.Error("failed to handle query", "query", job.Query, "err", err)
		outcome.Error = err.Error()
	} else {
		outcome.Result = res
	}

	w.mu.Lock()
	w.outcomes[job.Index] = outcome
	w.mu.Unlock()
}

// Submit queues a job. Blocks if the queue is full and returns false once
// ctx or the pool is cancelled.
func (w *WorkerPool) Submit(ctx context.Context, job Job) bool {
	select {
	case w.jobs <- job:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (w *WorkerPool) Close() {
	close(w.jobs)
	w.wg.Wait()
	w.cancel()
}

// Outcomes returns the first n outcomes by submission index. Jobs that never
// ran are absent.
func (w *WorkerPool) Outcomes(n int) []Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Outcome, 0, n)
	for i := 0; i < n; i++ {
		if o, ok := w.outcomes[i]; ok {
			out = append(out, o)
		}
	}

	return out
}
