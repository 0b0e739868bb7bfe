//go:build linux || freebsd || darwin

// File: advisory/tracker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package advisory

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/control"
	"github.com/momentics/fdextra/internal/logging"
)

// Advice is the value accepted by Set.
type Advice int

const (
	// Off restores normal cached I/O.
	Off Advice = 0
	// On requests uncached I/O.
	On Advice = 1
)

// Of maps a boolean to Advice.
func Of(on bool) Advice {
	if on {
		return On
	}
	return Off
}

// Valid reports whether a is one of the published sentinels.
func (a Advice) Valid() bool { return a == Off || a == On }

// primitive applies and optionally reads back the advice on a descriptor.
type primitive interface {
	name() string
	queryable() bool
	get(fd int) (bool, error)
	set(fd int, on bool) error
}

// identity is the (device, inode) pair of the file behind a descriptor.
type identity struct {
	dev, ino uint64
}

type entry struct {
	on bool
	id identity
}

// Tracker remembers advice per descriptor.
type Tracker struct {
	mu      sync.Mutex
	entries map[int]entry

	prim    primitive
	stat    func(fd int) (identity, error)
	log     *zap.Logger
	metrics *control.Metrics
}

// NewTracker returns a tracker for the platform primitive. log and metrics
// may be nil.
func NewTracker(log *zap.Logger, metrics *control.Metrics) *Tracker {
	return newTracker(platformPrimitive(), fstatIdentity, log, metrics)
}

func newTracker(p primitive, stat func(int) (identity, error), log *zap.Logger, metrics *control.Metrics) *Tracker {
	log = logging.OrNop(log)
	return &Tracker{
		entries: make(map[int]entry),
		prim:    p,
		stat:    stat,
		log:     log.Named("advisory"),
		metrics: metrics,
	}
}

// Primitive names the platform mechanism ("O_DIRECT" or "F_NOCACHE").
func (t *Tracker) Primitive() string { return t.prim.name() }

// Queryable reports whether Get reads the state from the kernel.
func (t *Tracker) Queryable() bool { return t.prim.queryable() }

// Get reports whether uncached I/O is in effect for target. It defaults to
// false for descriptors the tracker has not seen.
func (t *Tracker) Get(target api.Target) (bool, error) {
	fd, err := target.Descriptor("directio?")
	if err != nil {
		return false, err
	}
	id, statErr := t.stat(fd)

	if t.prim.queryable() {
		on, err := t.prim.get(fd)
		if err != nil {
			t.Forget(fd)
			return false, api.SystemError("fcntl", err)
		}
		t.mu.Lock()
		if statErr == nil {
			t.entries[fd] = entry{on: on, id: id}
		} else {
			delete(t.entries, fd)
		}
		t.mu.Unlock()
		return on, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[fd]
	if !ok {
		return false, nil
	}
	if statErr != nil || e.id != id {
		delete(t.entries, fd)
		t.log.Debug("dropping stale advice", zap.Int("fd", fd), zap.Error(statErr))
		return false, nil
	}
	return e.on, nil
}

// Set applies advice to target and returns the target. Values other than
// Off and On are rejected without touching the descriptor.
func (t *Tracker) Set(target api.Target, advice Advice) (api.Target, error) {
	if !advice.Valid() {
		return target, api.InvalidArgument("directio=", "invalid advice %d", int(advice))
	}
	fd, err := target.Descriptor("directio=")
	if err != nil {
		return target, err
	}
	on := advice == On
	if err := t.prim.set(fd, on); err != nil {
		return target, api.SystemError(t.prim.name(), err)
	}

	id, statErr := t.stat(fd)
	t.mu.Lock()
	if statErr == nil {
		t.entries[fd] = entry{on: on, id: id}
	} else {
		delete(t.entries, fd)
	}
	t.mu.Unlock()

	t.metrics.IncAdvisory(on)
	t.log.Debug("advice applied", zap.Int("fd", fd), zap.Bool("on", on), zap.String("primitive", t.prim.name()))
	return target, nil
}

// Forget drops any advice remembered for fd. Hosts call it when they close
// the descriptor.
func (t *Tracker) Forget(fd int) {
	t.mu.Lock()
	delete(t.entries, fd)
	t.mu.Unlock()
}

// Len returns the number of descriptors with remembered advice.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func fstatIdentity(fd int) (identity, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return identity{}, err
	}
	return identity{dev: uint64(st.Dev), ino: uint64(st.Ino)}, nil
}
