// File: vectored/writer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vectored

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/control"
	"github.com/momentics/fdextra/internal/logging"
	"github.com/momentics/fdextra/reactor"
)

// MaxVectors is the largest vector list accepted in one call (IOV_MAX on
// Linux and Darwin).
const MaxVectors = 1024

const opWritev = "writev"

// Writer performs vectored writes.
type Writer struct {
	sys        api.SyscallWriter
	waiter     api.WritableWaiter
	region     api.BlockingRegion
	maxVectors int
	log        *zap.Logger
	metrics    *control.Metrics
}

// Option configures a Writer.
type Option func(*Writer)

// WithSyscallWriter replaces the platform writev.
func WithSyscallWriter(s api.SyscallWriter) Option {
	return func(w *Writer) {
		if s != nil {
			w.sys = s
		}
	}
}

// WithWaiter replaces the poll(2) writability wait.
func WithWaiter(wt api.WritableWaiter) Option {
	return func(w *Writer) {
		if wt != nil {
			w.waiter = wt
		}
	}
}

// WithRegion runs each writev inside r.
func WithRegion(r api.BlockingRegion) Option {
	return func(w *Writer) {
		if r != nil {
			w.region = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Writer) {
		w.log = logging.OrNop(l)
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *control.Metrics) Option {
	return func(w *Writer) { w.metrics = m }
}

// WithMaxVectors lowers the accepted vector count. Values outside
// (0, MaxVectors] are ignored.
func WithMaxVectors(n int) Option {
	return func(w *Writer) {
		if n > 0 && n <= MaxVectors {
			w.maxVectors = n
		}
	}
}

// New builds a Writer using the platform writev, a poll(2) waiter and an
// inline blocking region unless overridden.
func New(opts ...Option) *Writer {
	w := &Writer{
		sys:        SysWriter{},
		waiter:     reactor.NewPollWaiter(),
		region:     api.Inline,
		maxVectors: MaxVectors,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(w)
	}
	w.log = w.log.Named("writer")
	return w
}

// MaxVectors returns the vector limit enforced by this writer.
func (w *Writer) MaxVectors() int { return w.maxVectors }

// WriteVectored writes bufs to target in order and returns the number of
// bytes written.
//
// Short writes are continued from where the kernel stopped. EINTR is retried
// and EAGAIN waits for writability. When a later call fails after some bytes
// went out, the byte count is returned with a nil error; the failure is only
// logged. A failure before any progress is a system error carrying the errno.
func (w *Writer) WriteVectored(ctx context.Context, target api.Target, bufs [][]byte) (int64, error) {
	fd, err := target.Descriptor("write_vectored")
	if err != nil {
		return 0, err
	}
	if len(bufs) > w.maxVectors {
		return 0, api.InvalidArgument("write_vectored", "%d buffers exceed the limit of %d", len(bufs), w.maxVectors)
	}

	var remaining int64
	for _, b := range bufs {
		remaining += int64(len(b))
	}
	if remaining == 0 {
		return 0, nil
	}

	views := advance(append([][]byte(nil), bufs...), 0)
	var result int64
	for {
		var (
			n    int
			serr error
		)
		if err := w.region.Run(ctx, func() { n, serr = w.sys.Writev(fd, views) }); err != nil {
			return w.stop(fd, result, err)
		}
		if serr != nil {
			switch {
			case errors.Is(serr, unix.EINTR):
				continue
			case errors.Is(serr, unix.EAGAIN), errors.Is(serr, unix.EWOULDBLOCK):
				w.metrics.IncWouldBlock()
				if err := w.waiter.WaitWritable(ctx, fd); err != nil {
					return w.stop(fd, result, err)
				}
				continue
			default:
				return w.stop(fd, result, serr)
			}
		}

		w.metrics.ObserveWritev(n)
		if int64(n) >= remaining {
			return result + remaining, nil
		}
		if n <= 0 {
			return w.stop(fd, result, api.ErrNoProgress)
		}
		result += int64(n)
		remaining -= int64(n)
		views = advance(views, n)
	}
}

// stop ends a write after err. Progress already made wins over the error.
func (w *Writer) stop(fd int, result int64, err error) (int64, error) {
	if result > 0 {
		w.metrics.IncPartial()
		w.log.Debug("vectored write stopped early",
			zap.Int("fd", fd), zap.Int64("written", result), zap.Error(err))
		return result, nil
	}
	var aerr *api.Error
	switch {
	case errors.As(err, &aerr):
		return 0, err
	case errors.Is(err, api.ErrNoProgress):
		return 0, &api.Error{Code: api.ErrCodeSystem, Op: opWritev, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, api.ErrRegionClosed):
		return 0, &api.Error{Code: api.ErrCodeRuntime, Op: opWritev, Err: err}
	}
	return 0, api.SystemError(opWritev, err)
}

// advance drops the first n bytes from views, reslicing the first partially
// consumed buffer, and skips leading empty buffers.
func advance(views [][]byte, n int) [][]byte {
	for len(views) > 0 {
		l := len(views[0])
		if n < l {
			views[0] = views[0][n:]
			return views
		}
		n -= l
		views = views[1:]
		if n == 0 && len(views) > 0 && len(views[0]) > 0 {
			return views
		}
	}
	return views
}
