// Package fake
// Author: momentics <momentics@gmail.com>
//
// In-memory descriptor table usable as an enumerator and close function.

package fake

import (
	"sort"
	"sync"

	"golang.org/x/sys/unix"
)

// FDTable is a fake process descriptor table.
type FDTable struct {
	mu      sync.Mutex
	open    map[int]bool
	max     int
	maxErr  error
	closed  []int
	failing map[int]error
}

// NewFDTable creates a table with the given descriptors open and open_max
// set to max.
func NewFDTable(max int, fds ...int) *FDTable {
	t := &FDTable{open: make(map[int]bool), max: max, failing: make(map[int]error)}
	for _, fd := range fds {
		t.open[fd] = true
	}
	return t
}

// SetOpenMaxError makes OpenMax fail with err.
func (t *FDTable) SetOpenMaxError(err error) {
	t.mu.Lock()
	t.maxErr = err
	t.mu.Unlock()
}

// FailClose makes Close(fd) fail with err while leaving fd open.
func (t *FDTable) FailClose(fd int, err error) {
	t.mu.Lock()
	t.failing[fd] = err
	t.mu.Unlock()
}

// OpenMax implements the enumerator contract.
func (t *FDTable) OpenMax() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.maxErr != nil {
		return 0, t.maxErr
	}
	return t.max, nil
}

// Each visits a sorted snapshot of the open descriptors in [lowfd, max).
func (t *FDTable) Each(lowfd int, fn func(fd int) error) error {
	for _, fd := range t.Open() {
		if fd < lowfd || fd >= t.max {
			continue
		}
		if err := fn(fd); err != nil {
			return err
		}
	}
	return nil
}

// Close removes fd from the table. Closing a descriptor that is not open
// returns EBADF.
func (t *FDTable) Close(fd int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.failing[fd]; ok {
		return err
	}
	if !t.open[fd] {
		return unix.EBADF
	}
	delete(t.open, fd)
	t.closed = append(t.closed, fd)
	return nil
}

// Open returns the open descriptors in ascending order.
func (t *FDTable) Open() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, 0, len(t.open))
	for fd := range t.open {
		out = append(out, fd)
	}
	sort.Ints(out)
	return out
}

// Closed returns the descriptors closed so far, in close order.
func (t *FDTable) Closed() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]int(nil), t.closed...)
}
