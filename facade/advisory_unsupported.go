//go:build !linux && !freebsd && !darwin

// File: facade/advisory_unsupported.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

// advisoryState is empty where the platform has no uncached I/O primitive;
// the advisory methods do not exist on such builds.
type advisoryState struct{}

func (h *FDExtra) initAdvisory() {}

func (h *FDExtra) registerAdvisoryProbes() {}
