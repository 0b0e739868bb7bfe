// Package api
// Author: momentics
//
// Syscall-level collaborator contracts consumed by the vectored writer.

package api

import "context"

// SyscallWriter issues one scatter/gather write and reports the raw result.
// Implementations must not retry or loop; errors are returned as
// syscall.Errno where the OS provides one.
type SyscallWriter interface {
	Writev(fd int, bufs [][]byte) (int, error)
}

// WritableWaiter suspends the caller until fd is writable.
type WritableWaiter interface {
	WaitWritable(ctx context.Context, fd int) error
}
