// Package fake
// Author: momentics <momentics@gmail.com>
//
// Scriptable writev stand-in.

package fake

import (
	"bytes"
	"sync"
)

// Step overrides the outcome of one Writev call.
type Step struct {
	// Err is returned with a zero count.
	Err error
	// Zero makes the call succeed without accepting any bytes.
	Zero bool
}

// Writer records what a vectored writer hands to writev. Each call accepts
// at most PerCall bytes (all of them when PerCall <= 0) unless Script has an
// entry for that call number (1-based).
type Writer struct {
	PerCall int
	Script  map[int]Step

	mu      sync.Mutex
	calls   int
	vectors []int
	data    bytes.Buffer
}

// NewLimitedWriter returns a writer accepting n bytes per call.
func NewLimitedWriter(n int) *Writer {
	return &Writer{PerCall: n}
}

// Writev implements api.SyscallWriter.
func (w *Writer) Writev(_ int, bufs [][]byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	w.vectors = append(w.vectors, len(bufs))
	if step, ok := w.Script[w.calls]; ok {
		if step.Err != nil {
			return 0, step.Err
		}
		if step.Zero {
			return 0, nil
		}
	}

	budget := w.PerCall
	written := 0
	for _, b := range bufs {
		if budget > 0 && written+len(b) > budget {
			w.data.Write(b[:budget-written])
			written = budget
			break
		}
		w.data.Write(b)
		written += len(b)
	}
	return written, nil
}

// Calls returns the number of Writev calls.
func (w *Writer) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

// Vectors returns the vector count passed to each call.
func (w *Writer) Vectors() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]int(nil), w.vectors...)
}

// Bytes returns everything accepted so far.
func (w *Writer) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.data.Bytes()...)
}
