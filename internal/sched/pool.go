// Package sched implements the work-stealing thread pool used to
// parallelize vertex processing and clipping across cores, plus the
// wait-counter join primitive used to fork/join batches of work onto
// it.
package sched

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kestrelgfx/vxraster/internal/sched/deque"
)

// Pool is a fixed-size worker pool backed by a single shared
// work-stealing deque. It is created lazily on first use and, per the
// package design, is never torn down: the process owns it for its
// lifetime (there is no Close).
type Pool struct {
	workers int
	queue   *deque.Deque
	mu      sync.Mutex
	cond    *sync.Cond
	started bool
}

var (
	globalPool atomic.Pointer[Pool]
)

// Get returns the process-wide pool, constructing it on first call.
// Concurrent first-use callers race benignly on an atomic
// compare-and-swap: the loser's unpublished pool is simply discarded
// (it never started any goroutines, so there is nothing to shut
// down).
func Get() *Pool {
	if p := globalPool.Load(); p != nil {
		return p
	}
	candidate := newPool(runtime.NumCPU())
	if globalPool.CompareAndSwap(nil, candidate) {
		candidate.start()
		return candidate
	}
	return globalPool.Load()
}

func newPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		queue:   deque.New(1024),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *Pool) start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	for i := 0; i < p.workers; i++ {
		go p.workerLoop()
	}
}

// Lock acquires the pool's submission mutex. A producer calls Lock,
// pushes a whole batch of tasks with PushTask, then calls Unlock,
// which wakes workers only after every task in the batch is visible.
func (p *Pool) Lock() {
	p.mu.Lock()
}

// Unlock releases the submission mutex and wakes workers.
func (p *Pool) Unlock() {
	p.cond.Broadcast()
	p.mu.Unlock()
}

// PushTask enqueues a task. Must be called while holding Lock: the
// queue's owner-side Push and Take are not safe to run concurrently,
// and workers call Take under the same mutex. The requirement is not
// checked at run time.
func (p *Pool) PushTask(fn func(data any), data any) {
	p.queue.Push(&deque.Task{Fn: fn, Data: data})
}

// Submit is a convenience wrapper around Lock/PushTask/Unlock for a
// single task.
func (p *Pool) Submit(fn func(data any), data any) {
	p.Lock()
	p.PushTask(fn, data)
	p.Unlock()
}

func (p *Pool) workerLoop() {
	for {
		if task, res := p.queue.Steal(); res == deque.StealOK {
			task.Fn(task.Data)
			continue
		} else if res == deque.StealAbort {
			continue
		}

		p.mu.Lock()
		task, ok := p.queue.Take()
		for !ok {
			p.cond.Wait()
			task, ok = p.queue.Take()
		}
		p.mu.Unlock()

		// Workers never hold the mutex while running user code: a
		// task that itself calls Submit/PushTask must not deadlock
		// against this goroutine's own lock.
		task.Fn(task.Data)
	}
}

// Workers reports the number of worker goroutines in the pool.
func (p *Pool) Workers() int {
	return p.workers
}
