//go:build unix && !linux && !darwin

// File: internal/fdenum/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// BSD /dev/fd only lists 0-2 unless fdescfs is mounted, so these platforms
// probe by default.

package fdenum

const platformDir = ""

func platformLimitSources() []limitSource {
	return rlimitSources()
}
