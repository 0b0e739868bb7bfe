// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives for fdextra. The blocking region runs syscalls that
// may park a thread (writev on a full pipe, a slow disk) on dedicated,
// thread-locked workers so the calling goroutine only waits on a channel.
//
// Nothing here cancels a syscall once it has been issued; cancellation is
// only honoured while a task is still queued.
package concurrency
