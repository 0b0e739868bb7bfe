// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection for fdextra.
//
// Provides:
//   - Prometheus counters for closes, visits, writev calls and advisory changes
//   - Named debug probes evaluated on demand
//
// This package is cross-platform.
package control
