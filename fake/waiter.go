// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake writability waiter and blocking region.

package fake

import (
	"context"
	"sync/atomic"
)

// Waiter counts writability waits and returns Err from each.
type Waiter struct {
	Err   error
	calls atomic.Int64
}

// WaitWritable implements api.WritableWaiter.
func (w *Waiter) WaitWritable(ctx context.Context, _ int) error {
	w.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.Err
}

// Calls returns the number of waits.
func (w *Waiter) Calls() int64 { return w.calls.Load() }

// Region runs tasks inline and counts them. When Err is set tasks are
// rejected without running.
type Region struct {
	Err  error
	runs atomic.Int64
}

// Run implements api.BlockingRegion.
func (r *Region) Run(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.Err != nil {
		return r.Err
	}
	r.runs.Add(1)
	fn()
	return nil
}

// Runs returns the number of tasks executed.
func (r *Region) Runs() int64 { return r.runs.Load() }
