package worker

import "sync/atomic"

// Per-worker queue depth. Submits beyond this block until the worker
// catches up.
const workerQueueSize = 16

// WorkerPool spreads tasks over a fixed set of workers round-robin.
type WorkerPool struct {
	workers []*Worker
	next    atomic.Uint64
}

// NewWorkerPool creates and starts numWorkers workers.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pool := &WorkerPool{
		workers: make([]*Worker, numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		worker := NewWorker(workerQueueSize)
		worker.Start()
		pool.workers[i] = worker
	}

	return pool
}

// Stop shuts every worker down, blocking until queued tasks have finished.
func (p *WorkerPool) Stop() {
	for _, worker := range p.workers {
		worker.Stop()
	}
}

// Submit hands a task to the next worker round-robin.
func (p *WorkerPool) Submit(task Task) {
	idx := p.next.Add(1)
	worker := p.workers[int(idx)%len(p.workers)]
	worker.Submit(task)
}
