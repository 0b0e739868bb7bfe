//go:build unix && !linux

// File: lifecycle/runtime_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

// runtimeDescriptors cannot tell kqueue and wakeup descriptors apart from
// host descriptors here, so everything open once the poller exists is
// reserved.
func runtimeDescriptors(enum Enumerator) ([]int, error) {
	return openDescriptors(enum)
}
