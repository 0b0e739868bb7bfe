//go:build linux

// File: internal/fdenum/platform_linux.go
// Author: momentics <momentics@gmail.com>

package fdenum

const platformDir = "/proc/self/fd"

// Linux has no compile-time OPEN_MAX.
func platformLimitSources() []limitSource {
	return rlimitSources()
}
