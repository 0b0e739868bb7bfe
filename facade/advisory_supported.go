//go:build linux || freebsd || darwin

// File: facade/advisory_supported.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"github.com/momentics/fdextra/advisory"
	"github.com/momentics/fdextra/api"
)

type advisoryState struct {
	tracker *advisory.Tracker
}

func (h *FDExtra) initAdvisory() {
	h.tracker = advisory.NewTracker(h.log, h.metrics)
}

func (h *FDExtra) registerAdvisoryProbes() {
	h.probes.Register("advisory.primitive", func() any { return h.tracker.Primitive() })
	h.probes.Register("advisory.tracked", func() any { return h.tracker.Len() })
}

// Advisory reports whether uncached I/O is in effect for target.
func (h *FDExtra) Advisory(target api.Target) (bool, error) {
	return h.tracker.Get(target)
}

// SetAdvisory applies advisory.On or advisory.Off to target and returns it.
func (h *FDExtra) SetAdvisory(target api.Target, advice advisory.Advice) (api.Target, error) {
	return h.tracker.Set(target, advice)
}

// NotifyClosed tells the facade that the host closed fd, dropping any
// remembered advice for it.
func (h *FDExtra) NotifyClosed(fd int) {
	h.tracker.Forget(fd)
}
