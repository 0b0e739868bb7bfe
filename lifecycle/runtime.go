// File: lifecycle/runtime.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

import (
	"os"

	"github.com/momentics/fdextra/api"
)

// initPoller makes the Go runtime create its network poller descriptors if
// it has not done so yet. Registering any pipe with the poller is enough;
// the poller outlives the pipe.
func initPoller() error {
	r, w, err := os.Pipe()
	if err != nil {
		return api.SystemError("pipe", err)
	}
	r.Close()
	w.Close()
	return nil
}

// ReserveRuntime reserves the descriptors owned by the Go runtime, such as
// the netpoller's epoll and wakeup descriptors, and returns how many were
// added. Closing those descriptors makes the runtime abort.
func (g *Guard) ReserveRuntime(enum Enumerator) (int, error) {
	if err := initPoller(); err != nil {
		return 0, err
	}
	fds, err := runtimeDescriptors(enum)
	if err != nil {
		return 0, err
	}
	g.Reserve(fds...)
	return len(fds), nil
}

// openDescriptors lists every descriptor the enumerator reports.
func openDescriptors(enum Enumerator) ([]int, error) {
	var fds []int
	err := enum.Each(0, func(fd int) error {
		fds = append(fds, fd)
		return nil
	})
	return fds, err
}
