package utils

import "sync"

// WorkerPool runs jobs on a bounded number of goroutines and keeps the first
// error any of them returns.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup

	mu       sync.Mutex
	firstErr error
}

// NewWorkerPool creates a WorkerPool running at most maxWorkers jobs at once.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job for execution in the pool. It blocks while the pool is full.
func (wp *WorkerPool) Submit(job func() error) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		if err := job(); err != nil {
			wp.mu.Lock()
			if wp.firstErr == nil {
				wp.firstErr = err
			}
			wp.mu.Unlock()
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns the first
// error reported by any of them.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.firstErr
}
