package transport

import (
	"errors"
	"sync"
	"time"
)

var ErrPoolClosed = errors.New("worker pool is shut down")

// Pool is a fixed number of workers consuming tasks from a queue. The queue is unbounded:
// when all the workers are busy, submitted tasks wait for a free worker instead of being
// rejected.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closed  bool
	wg      sync.WaitGroup
	onPanic func(v any)
}

// NewPool starts the workers immediately. onPanic is called with the recovered value
// when a task panics; the worker survives it. It may be nil.
func NewPool(workers int, onPanic func(v any)) *Pool {
	p := &Pool{onPanic: onPanic}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)

	for range workers {
		go p.worker()
	}

	return p
}

// Submit enqueues the task. It fails only if the pool was shut down.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.queue = append(p.queue, task)
	p.cond.Signal()

	return nil
}

// Pending returns the number of tasks waiting for a worker.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue)
}

// Shutdown stops accepting new tasks. Already queued tasks are still executed, after which
// the workers exit. The call isn't blocking, use Wait for that.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Wait blocks until all the workers exited or the timeout elapsed. It reports whether the
// workers are done.
func (p *Pool) Wait(timeout time.Duration) bool {
	done := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		task, ok := p.next()
		if !ok {
			return
		}

		p.run(task)
	}
}

func (p *Pool) next() (task func(), ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}

	if len(p.queue) == 0 {
		return nil, false
	}

	task = p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]

	return task, true
}

func (p *Pool) run(task func()) {
	defer func() {
		if v := recover(); v != nil && p.onPanic != nil {
			p.onPanic(v)
		}
	}()

	task()
}
