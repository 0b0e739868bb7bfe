//go:build linux

// File: vectored/writev_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vectored

import "golang.org/x/sys/unix"

// SysWriter issues writev(2) once per call.
type SysWriter struct{}

// Writev implements api.SyscallWriter.
func (SysWriter) Writev(fd int, bufs [][]byte) (int, error) {
	return unix.Writev(fd, bufs)
}
