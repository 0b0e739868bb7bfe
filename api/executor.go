// Package api
// Author: momentics
//
// Blocking-region contract: run a call that may block its OS thread without
// stalling other goroutines' work.

package api

import "context"

// BlockingRegion executes fn on a dedicated worker thread and waits for it.
// If ctx ends before fn starts, fn is withdrawn and ctx.Err() returned; once
// fn has started the caller always waits for it to finish.
type BlockingRegion interface {
	Run(ctx context.Context, fn func()) error
}

// RegionFunc adapts a plain function to BlockingRegion.
type RegionFunc func(ctx context.Context, fn func()) error

// Run implements BlockingRegion.
func (f RegionFunc) Run(ctx context.Context, fn func()) error { return f(ctx, fn) }

// Inline runs fn on the calling goroutine. Go already hands the P off during
// blocking syscalls, so this is a valid region for callers that do not need
// thread isolation.
var Inline BlockingRegion = RegionFunc(func(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
})
