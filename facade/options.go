// File: facade/options.go
// Package facade defines functional options for the FDExtra facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/lifecycle"
)

// Option customizes FDExtra initialization.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
	reserved   []api.ReservedSet
	sys        api.SyscallWriter
	waiter     api.WritableWaiter
	enum       lifecycle.Enumerator
	closeFn    lifecycle.CloseFunc
	noRuntime  bool
}

// WithLogger replaces the logger built from Config.LogLevel.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer registers metrics on reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithReserved adds host reserved-set predicates, in addition to any
// descriptors reserved later through ReserveOpenDescriptors.
func WithReserved(sets ...api.ReservedSet) Option {
	return func(o *options) {
		o.reserved = append(o.reserved, sets...)
	}
}

// WithSyscallWriter replaces the platform writev.
func WithSyscallWriter(s api.SyscallWriter) Option {
	return func(o *options) {
		o.sys = s
	}
}

// WithWaiter replaces the poll(2) writability wait.
func WithWaiter(w api.WritableWaiter) Option {
	return func(o *options) {
		o.waiter = w
	}
}

// WithDescriptorTable replaces the process enumerator and close(2), mainly
// for tests. closeFn may be nil to keep close(2).
func WithDescriptorTable(enum lifecycle.Enumerator, closeFn lifecycle.CloseFunc) Option {
	return func(o *options) {
		o.enum = enum
		o.closeFn = closeFn
	}
}

// WithoutRuntimeReservation leaves the Go runtime's own descriptors
// unreserved even when Config.ReserveRuntime is set. A CloseFrom that then
// reaches the netpoller's descriptors aborts the process.
func WithoutRuntimeReservation() Option {
	return func(o *options) {
		o.noRuntime = true
	}
}
