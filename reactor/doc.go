// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness wait used by the vectored writer when
// a non-blocking descriptor reports EAGAIN. It is deliberately a single-fd
// poll(2) wait, not an event loop.
package reactor
