// File: lifecycle/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

import (
	"sync"

	"github.com/momentics/fdextra/api"
)

// Guard is the union of the reserved sets registered by the host. It is safe
// for concurrent use.
type Guard struct {
	mu    sync.RWMutex
	preds []api.ReservedSet
	fixed map[int]struct{}
}

// NewGuard returns a guard seeded with the given predicates. Nil predicates
// are ignored.
func NewGuard(preds ...api.ReservedSet) *Guard {
	g := &Guard{fixed: make(map[int]struct{})}
	for _, p := range preds {
		g.Add(p)
	}
	return g
}

// Add registers another reserved-set predicate.
func (g *Guard) Add(p api.ReservedSet) {
	if p == nil {
		return
	}
	g.mu.Lock()
	g.preds = append(g.preds, p)
	g.mu.Unlock()
}

// Reserve marks specific descriptor numbers as reserved.
func (g *Guard) Reserve(fds ...int) {
	g.mu.Lock()
	for _, fd := range fds {
		if fd >= 0 {
			g.fixed[fd] = struct{}{}
		}
	}
	g.mu.Unlock()
}

// IsReserved reports whether any registered set claims fd.
func (g *Guard) IsReserved(fd int) bool {
	if g == nil {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.fixed[fd]; ok {
		return true
	}
	for _, p := range g.preds {
		if p(fd) {
			return true
		}
	}
	return false
}

// ReservedSet exposes the guard as a single predicate.
func (g *Guard) ReservedSet() api.ReservedSet {
	return g.IsReserved
}

// ReserveOpen reserves every descriptor the enumerator reports right now and
// returns how many were added.
func (g *Guard) ReserveOpen(enum Enumerator) (int, error) {
	fds, err := openDescriptors(enum)
	if err != nil {
		return 0, err
	}
	g.Reserve(fds...)
	return len(fds), nil
}

// Len returns the number of explicitly reserved descriptor numbers.
func (g *Guard) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.fixed)
}
