// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform probes shared by every build.

package control

import "runtime"

// RegisterPlatformProbes sets platform identification probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.Register("platform.os", func() any { return runtime.GOOS })
	dp.Register("platform.arch", func() any { return runtime.GOARCH })
	dp.Register("platform.cpus", func() any { return runtime.NumCPU() })
}
