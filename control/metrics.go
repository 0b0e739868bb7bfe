// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus counters for descriptor lifecycle and vectored writes.
// All methods are safe on a nil *Metrics, which disables collection.

package control

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "fdextra"

// Metrics holds the library's counters.
type Metrics struct {
	closed         prometheus.Counter
	visited        prometheus.Counter
	writevSyscalls prometheus.Counter
	writevBytes    prometheus.Counter
	writevPartial  prometheus.Counter
	writevBlocked  prometheus.Counter
	advisorySet    *prometheus.CounterVec
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

// register registers c on reg, returning the already registered collector
// when an identical one exists.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewMetrics creates the counters and registers them on reg. A nil reg
// leaves them unregistered; they still count and show up in Snapshot.
// Counters already registered on reg by another instance are shared.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		closed:         counter("descriptors_closed_total", "Descriptors closed by close-from."),
		visited:        counter("descriptors_visited_total", "Descriptors passed to walk visitors."),
		writevSyscalls: counter("writev_syscalls_total", "writev(2) calls issued."),
		writevBytes:    counter("writev_bytes_total", "Bytes accepted by writev(2)."),
		writevPartial:  counter("writev_partial_results_total", "Vectored writes that returned a short count after a later failure."),
		writevBlocked:  counter("writev_would_block_total", "EAGAIN results that led to a writability wait."),
		advisorySet: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_set_total",
			Help:      "Advisory mode changes applied, by value.",
		}, []string{"value"}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	for _, c := range []*prometheus.Counter{
		&m.closed, &m.visited, &m.writevSyscalls, &m.writevBytes, &m.writevPartial, &m.writevBlocked,
	} {
		if *c, err = register(reg, *c); err != nil {
			return nil, err
		}
	}
	if m.advisorySet, err = register(reg, m.advisorySet); err != nil {
		return nil, err
	}
	return m, nil
}

// IncClosed counts one descriptor closed by close-from.
func (m *Metrics) IncClosed() {
	if m != nil {
		m.closed.Inc()
	}
}

// IncVisited counts one visitor invocation.
func (m *Metrics) IncVisited() {
	if m != nil {
		m.visited.Inc()
	}
}

// ObserveWritev counts one writev(2) call and the bytes it accepted.
func (m *Metrics) ObserveWritev(n int) {
	if m == nil {
		return
	}
	m.writevSyscalls.Inc()
	if n > 0 {
		m.writevBytes.Add(float64(n))
	}
}

// IncPartial counts a vectored write that stopped early with a short count.
func (m *Metrics) IncPartial() {
	if m != nil {
		m.writevPartial.Inc()
	}
}

// IncWouldBlock counts an EAGAIN that led to a writability wait.
func (m *Metrics) IncWouldBlock() {
	if m != nil {
		m.writevBlocked.Inc()
	}
}

// IncAdvisory counts an applied advisory change.
func (m *Metrics) IncAdvisory(on bool) {
	if m != nil {
		m.advisorySet.WithLabelValues(strconv.FormatBool(on)).Inc()
	}
}

// Snapshot returns the current counter values keyed by metric name.
func (m *Metrics) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	if m == nil {
		return out
	}
	read := func(name string, c prometheus.Counter) {
		var pb dto.Metric
		if err := c.Write(&pb); err == nil && pb.Counter != nil {
			out[name] = pb.Counter.GetValue()
		}
	}
	read("descriptors_closed_total", m.closed)
	read("descriptors_visited_total", m.visited)
	read("writev_syscalls_total", m.writevSyscalls)
	read("writev_bytes_total", m.writevBytes)
	read("writev_partial_results_total", m.writevPartial)
	read("writev_would_block_total", m.writevBlocked)
	for _, v := range []bool{false, true} {
		c, err := m.advisorySet.GetMetricWithLabelValues(strconv.FormatBool(v))
		if err == nil {
			read("advisory_set_total{value="+strconv.FormatBool(v)+"}", c)
		}
	}
	return out
}
