//go:build unix && !linux && !darwin && !freebsd && !netbsd && !dragonfly

// File: vectored/writev_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vectored

import "golang.org/x/sys/unix"

// SysWriter writes the first non-empty buffer with write(2). The writer
// loop treats the result as a short vectored write.
type SysWriter struct{}

// Writev implements api.SyscallWriter.
func (SysWriter) Writev(fd int, bufs [][]byte) (int, error) {
	for _, b := range bufs {
		if len(b) > 0 {
			return unix.Write(fd, b)
		}
	}
	return 0, nil
}
