//go:build darwin

// File: internal/fdenum/platform_darwin.go
// Author: momentics <momentics@gmail.com>

package fdenum

const platformDir = "/dev/fd"

// openMaxDarwin is OPEN_MAX from <sys/syslimits.h>.
const openMaxDarwin = 10240

func platformLimitSources() []limitSource {
	return append(rlimitSources(), limitSource{
		name:  "open_max",
		query: func() (int, bool) { return openMaxDarwin, true },
	})
}
