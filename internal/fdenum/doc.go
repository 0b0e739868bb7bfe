// File: internal/fdenum/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package fdenum lists the descriptors open in the current process.
//
// Two strategies exist. The directory strategy reads the kernel's per-process
// descriptor listing (/proc/self/fd on Linux, /dev/fd on Darwin) and skips the
// listing's own handle. The probe strategy asks fcntl(F_GETFD) about every
// number below the descriptor table size. Descriptors may be opened or closed
// by other goroutines while a scan runs; callers must tolerate acting on a
// descriptor that is already gone.
package fdenum
