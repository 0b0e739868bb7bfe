//go:build linux

// File: lifecycle/runtime_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

import (
	"os"
	"path/filepath"
	"strconv"
)

const procFDDir = "/proc/self/fd"

// runtimeKinds are the link targets of descriptors the runtime creates for
// itself: the netpoller's epoll instance, its eventfd wakeup, and pidfds
// held by os.Process.
var runtimeKinds = map[string]bool{
	"anon_inode:[eventpoll]": true,
	"anon_inode:[eventfd]":   true,
	"anon_inode:[pidfd]":     true,
}

// runtimeDescriptors classifies open descriptors by their /proc link target.
// Without /proc every open descriptor is treated as the runtime's.
func runtimeDescriptors(enum Enumerator) ([]int, error) {
	if _, err := os.Stat(procFDDir); err != nil {
		return openDescriptors(enum)
	}
	var fds []int
	err := enum.Each(0, func(fd int) error {
		target, err := os.Readlink(filepath.Join(procFDDir, strconv.Itoa(fd)))
		if err != nil {
			// Closed since the scan.
			return nil
		}
		if runtimeKinds[target] {
			fds = append(fds, fd)
		}
		return nil
	})
	return fds, err
}
