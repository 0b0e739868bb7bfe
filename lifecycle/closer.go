// File: lifecycle/closer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/control"
	"github.com/momentics/fdextra/internal/logging"
)

// Enumerator produces the open descriptors of the process.
type Enumerator interface {
	OpenMax() (int, error)
	Each(lowfd int, fn func(fd int) error) error
}

// CloseFunc closes one descriptor.
type CloseFunc func(fd int) error

// Closer closes every non-reserved descriptor at or above a threshold.
type Closer struct {
	enum    Enumerator
	guard   *Guard
	close   CloseFunc
	log     *zap.Logger
	metrics *control.Metrics
}

// CloserOption configures a Closer.
type CloserOption func(*Closer)

// WithCloseFunc replaces close(2).
func WithCloseFunc(fn CloseFunc) CloserOption {
	return func(c *Closer) {
		if fn != nil {
			c.close = fn
		}
	}
}

// WithCloserLogger sets the logger.
func WithCloserLogger(l *zap.Logger) CloserOption {
	return func(c *Closer) {
		c.log = logging.OrNop(l)
	}
}

// WithCloserMetrics sets the metrics sink.
func WithCloserMetrics(m *control.Metrics) CloserOption {
	return func(c *Closer) { c.metrics = m }
}

// NewCloser builds a Closer. A nil guard reserves nothing.
func NewCloser(enum Enumerator, guard *Guard, opts ...CloserOption) *Closer {
	c := &Closer{
		enum:  enum,
		guard: guard,
		close: unix.Close,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.Named("closer")
	return c
}

// CloseFrom closes every open, non-reserved descriptor >= lowfd.
//
// Failures to close individual descriptors (EBADF when another goroutine got
// there first, EINTR, EIO) do not fail the operation; they are logged at
// debug level. Descriptors opened concurrently may survive.
func (c *Closer) CloseFrom(lowfd int) error {
	if lowfd < 0 {
		return api.InvalidArgument("close_from", "negative lowfd %d", lowfd)
	}
	max, err := c.enum.OpenMax()
	if err != nil {
		return err
	}

	var (
		closeErrs error
		closed    int
	)
	err = c.enum.Each(lowfd, func(fd int) error {
		if fd >= max || c.guard.IsReserved(fd) {
			return nil
		}
		if err := c.close(fd); err != nil {
			closeErrs = multierr.Append(closeErrs, api.SystemError("close", err))
			return nil
		}
		closed++
		c.metrics.IncClosed()
		return nil
	})
	if err != nil {
		return err
	}

	if closeErrs != nil {
		c.log.Debug("some descriptors failed to close",
			zap.Int("lowfd", lowfd),
			zap.Int("failed", len(multierr.Errors(closeErrs))),
			zap.Error(closeErrs))
	}
	c.log.Debug("close_from done", zap.Int("lowfd", lowfd), zap.Int("closed", closed))
	return nil
}
