//go:build darwin || freebsd || netbsd || dragonfly

// File: vectored/writev_bsd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vectored

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// SysWriter issues writev(2) once per call.
type SysWriter struct{}

// Writev implements api.SyscallWriter. Empty buffers are left out of the
// iovec array.
func (SysWriter) Writev(fd int, bufs [][]byte) (int, error) {
	iovs := make([]unix.Iovec, 0, len(bufs))
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		v := unix.Iovec{Base: &b[0]}
		v.SetLen(len(b))
		iovs = append(iovs, v)
	}
	if len(iovs) == 0 {
		return 0, nil
	}
	r, _, e := unix.Syscall(unix.SYS_WRITEV, uintptr(fd), uintptr(unsafe.Pointer(&iovs[0])), uintptr(len(iovs)))
	runtime.KeepAlive(bufs)
	if e != 0 {
		return 0, e
	}
	return int(r), nil
}
