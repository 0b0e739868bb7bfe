// File: internal/concurrency/region.go
// Package concurrency implements the blocking region used for syscalls that
// may park their OS thread.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Region dispatches tasks to worker goroutines, each locked to its own OS
// thread, through a single FIFO. Callers wait on a per-task channel.

package concurrency

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/internal/logging"
)

const (
	taskPending int32 = iota
	taskRunning
	taskWithdrawn
)

// task is one unit of blocking work.
type task struct {
	fn    func()
	state atomic.Int32
	done  chan struct{}
	err   error
}

// Region manages a pool of thread-locked workers.
type Region struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *queue.Queue // of *task
	closed  bool
	wg      sync.WaitGroup
	log     *zap.Logger

	numWorkers int32

	// statistics
	submitted atomic.Int64
	completed atomic.Int64
	withdrawn atomic.Int64
}

var _ api.BlockingRegion = (*Region)(nil)

// NewRegion starts numWorkers workers. If numWorkers <= 0, defaults to
// runtime.NumCPU().
func NewRegion(numWorkers int, log *zap.Logger) *Region {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	log = logging.OrNop(log)
	r := &Region{
		pending:    queue.New(),
		log:        log.Named("region"),
		numWorkers: int32(numWorkers),
	}
	r.cond = sync.NewCond(&r.mu)
	r.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go r.worker(i)
	}
	return r
}

// Run enqueues fn and blocks until it has run. See api.BlockingRegion.
func (r *Region) Run(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &task{fn: fn, done: make(chan struct{})}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegionClosed
	}
	r.pending.Add(t)
	r.cond.Signal()
	r.mu.Unlock()
	r.submitted.Add(1)

	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		if t.state.CompareAndSwap(taskPending, taskWithdrawn) {
			r.withdrawn.Add(1)
			return ctx.Err()
		}
		// Already running: the syscall cannot be recalled.
		<-t.done
		return t.err
	}
}

// NumWorkers returns the number of workers.
func (r *Region) NumWorkers() int {
	return int(atomic.LoadInt32(&r.numWorkers))
}

// Close stops the workers after the queued tasks drain and waits for them.
// Tasks submitted after Close fail with api.ErrRegionClosed.
func (r *Region) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.cond.Broadcast()
	r.mu.Unlock()
	r.wg.Wait()
}

// Stats returns basic region metrics.
func (r *Region) Stats() map[string]int64 {
	r.mu.Lock()
	queued := int64(r.pending.Length())
	r.mu.Unlock()
	return map[string]int64{
		"submitted_tasks": r.submitted.Load(),
		"completed_tasks": r.completed.Load(),
		"withdrawn_tasks": r.withdrawn.Load(),
		"queued_tasks":    queued,
		"num_workers":     int64(r.NumWorkers()),
	}
}

// next blocks until a task is available or the region is closed and empty.
func (r *Region) next() (*task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.pending.Length() == 0 {
		if r.closed {
			return nil, false
		}
		r.cond.Wait()
	}
	return r.pending.Remove().(*task), true
}

// worker is the main loop for one thread-locked worker.
func (r *Region) worker(id int) {
	defer r.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	for {
		t, ok := r.next()
		if !ok {
			return
		}
		if !t.state.CompareAndSwap(taskPending, taskRunning) {
			// Caller gave up before we got here.
			continue
		}
		r.execute(id, t)
	}
}

// execute runs the task, converting a panic into the task's error.
func (r *Region) execute(id int, t *task) {
	defer func() {
		if p := recover(); p != nil {
			t.err = fmt.Errorf("blocking region task panicked: %v", p)
			r.log.Error("task panicked", zap.Int("worker", id), zap.Any("panic", p))
		}
		r.completed.Add(1)
		close(t.done)
	}()
	t.fn()
}
