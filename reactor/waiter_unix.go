//go:build unix

// File: reactor/waiter_unix.go
// Author: momentics <momentics@gmail.com>
//
// poll(2)-based writability wait.

package reactor

import (
	"context"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
)

// DefaultSlice bounds a single poll(2) when the context can be cancelled.
const DefaultSlice = 100 * time.Millisecond

// PollWaiter waits for POLLOUT on a single descriptor.
type PollWaiter struct {
	// Slice bounds each poll(2) call while ctx is cancellable. Zero means
	// DefaultSlice.
	Slice time.Duration
}

var _ api.WritableWaiter = (*PollWaiter)(nil)

// NewPollWaiter returns a waiter with the default poll slice.
func NewPollWaiter() *PollWaiter {
	return &PollWaiter{Slice: DefaultSlice}
}

// WaitWritable blocks until fd is writable, ctx ends, or poll fails.
// POLLERR and POLLHUP count as ready so that the next write reports the real
// error; POLLNVAL is returned as EBADF.
func (w *PollWaiter) WaitWritable(ctx context.Context, fd int) error {
	timeout := -1
	if ctx.Done() != nil {
		slice := w.Slice
		if slice <= 0 {
			slice = DefaultSlice
		}
		timeout = int(slice / time.Millisecond)
		if timeout <= 0 {
			timeout = 1
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
		n, err := unix.Poll(fds, timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return api.SystemError("poll", err)
		}
		if n == 0 {
			// Slice elapsed, re-check ctx.
			continue
		}
		if fds[0].Revents&unix.POLLNVAL != 0 {
			return api.SystemError("poll", unix.EBADF)
		}
		return nil
	}
}
