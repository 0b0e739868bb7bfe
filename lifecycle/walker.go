// File: lifecycle/walker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/control"
	"github.com/momentics/fdextra/internal/logging"
)

// Walker visits open, non-reserved descriptors.
type Walker struct {
	enum    Enumerator
	guard   *Guard
	log     *zap.Logger
	metrics *control.Metrics
}

// NewWalker builds a Walker. log and metrics may be nil.
func NewWalker(enum Enumerator, guard *Guard, log *zap.Logger, metrics *control.Metrics) *Walker {
	log = logging.OrNop(log)
	return &Walker{enum: enum, guard: guard, log: log.Named("walker"), metrics: metrics}
}

// Walk calls visitor once for every open, non-reserved descriptor >= lowfd.
// The order is unspecified. A visitor error stops the walk and is returned
// wrapped.
func (w *Walker) Walk(lowfd int, visitor api.Visitor) error {
	if lowfd < 0 {
		return api.InvalidArgument("fd_walk", "negative lowfd %d", lowfd)
	}
	if visitor == nil {
		return api.InvalidArgument("fd_walk", "nil visitor")
	}
	visited := 0
	err := w.enum.Each(lowfd, func(fd int) error {
		if fd < lowfd || w.guard.IsReserved(fd) {
			return nil
		}
		visited++
		w.metrics.IncVisited()
		if err := visitor(fd); err != nil {
			return fmt.Errorf("fd_walk: visitor at fd %d: %w", fd, err)
		}
		return nil
	})
	w.log.Debug("fd_walk done", zap.Int("lowfd", lowfd), zap.Int("visited", visited), zap.Error(err))
	return err
}
