package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool runs jobs across a fixed number of workers. Jobs are submitted
// up front; Wait blocks until every submitted job has finished.
type Pool struct {
	workers  int
	jobs     chan Job
	mu       sync.Mutex
	results  []Result
	wg       sync.WaitGroup
	workerWG sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	poolCtx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		ctx:     poolCtx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.workerWG.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.workerWG.Done()
	for job := range p.jobs {
		result := job.Execute(p.ctx)
		p.mu.Lock()
		p.results = append(p.results, result)
		p.mu.Unlock()
		p.wg.Done()
	}
}

// Submit queues a job for execution
func (p *Pool) Submit(job Job) {
	p.wg.Add(1)
	p.jobs <- job
}

// Wait blocks until all submitted jobs complete and returns their results
func (p *Pool) Wait() []Result {
	p.wg.Wait()
	close(p.jobs)
	p.workerWG.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Shutdown cancels the pool context so in-flight jobs can abort early
func (p *Pool) Shutdown() {
	p.cancel()
}
