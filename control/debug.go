// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named diagnostic probes evaluated on demand (open_max, strategy, tracker
// size, region stats).

package control

import (
	"sort"
	"sync"
)

// Probe computes one diagnostic value when the state is dumped.
type Probe func() any

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]Probe)}
}

// Register inserts or replaces a named probe.
func (dp *DebugProbes) Register(name string, fn Probe) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// Names returns the registered probe names, sorted.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Dump evaluates every probe. A panicking probe reports the panic value
// instead of taking the caller down.
func (dp *DebugProbes) Dump() map[string]any {
	dp.mu.RLock()
	probes := make(map[string]Probe, len(dp.probes))
	for k, fn := range dp.probes {
		probes[k] = fn
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(probes))
	for k, fn := range probes {
		out[k] = evaluate(fn)
	}
	return out
}

func evaluate(fn Probe) (v any) {
	defer func() {
		if p := recover(); p != nil {
			v = p
		}
	}()
	return fn()
}
