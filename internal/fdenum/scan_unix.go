//go:build unix

// File: internal/fdenum/scan_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fdenum

import (
	"golang.org/x/sys/unix"
)

const direntBufSize = 8192

// openDir opens path as a directory, retrying on EINTR.
func openDir(path string) (int, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		return fd, err
	}
}

// scanDir lists the numeric entries of a descriptor directory, skipping the
// directory's own descriptor and entries below lowfd.
func scanDir(path string, lowfd int) ([]int, error) {
	dfd, err := openDir(path)
	if err != nil {
		return nil, err
	}
	defer unix.Close(dfd)

	buf := make([]byte, direntBufSize)
	var names []string
	for {
		n, err := unix.ReadDirent(dfd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			break
		}
		_, _, names = unix.ParseDirent(buf[:n], -1, names)
	}

	fds := make([]int, 0, len(names))
	for _, name := range names {
		fd, ok := parseFD(name)
		if !ok || fd == dfd || fd < lowfd {
			continue
		}
		fds = append(fds, fd)
	}
	return fds, nil
}

// isOpen reports whether fd refers to an open descriptor.
func isOpen(fd int) bool {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}

// rlimitSources queries RLIMIT_NOFILE: the hard limit first, then the soft
// limit, which is what sysconf(_SC_OPEN_MAX) reports.
func rlimitSources() []limitSource {
	query := func(hard bool) func() (int, bool) {
		return func() (int, bool) {
			var rl unix.Rlimit
			if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
				return 0, false
			}
			v := uint64(rl.Cur)
			if hard {
				v = uint64(rl.Max)
			}
			// RLIM_INFINITY and other huge values are rejected by the range
			// check in OpenMax.
			if v > 1<<31 {
				return 0, false
			}
			return int(v), true
		}
	}
	return []limitSource{
		{name: "rlimit_hard", query: query(true)},
		{name: "rlimit_soft", query: query(false)},
	}
}
