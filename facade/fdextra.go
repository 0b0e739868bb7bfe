// File: facade/fdextra.go
// Unified facade layer for the fdextra library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FDExtra aggregates the descriptor enumerator, reserved-set guard, bulk
// closer, walker, vectored writer, blocking region, metrics and debug probes
// behind a single host-facing type built from an immutable Config.

package facade

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/control"
	"github.com/momentics/fdextra/internal/concurrency"
	"github.com/momentics/fdextra/internal/fdenum"
	"github.com/momentics/fdextra/internal/logging"
	"github.com/momentics/fdextra/lifecycle"
	"github.com/momentics/fdextra/vectored"
)

// MaxVectors is the largest buffer list WriteVectored accepts.
const MaxVectors = vectored.MaxVectors

// FDExtra is the main facade type.
type FDExtra struct {
	config *Config
	log    *zap.Logger

	fdenum *fdenum.Enumerator // nil when a custom table is injected
	enum   lifecycle.Enumerator
	guard  *lifecycle.Guard
	closer *lifecycle.Closer
	walker *lifecycle.Walker
	writer *vectored.Writer
	region *concurrency.Region // nil when writes run inline

	registry *prometheus.Registry // nil when the caller supplied a registerer
	metrics  *control.Metrics
	probes   *control.DebugProbes

	advisoryState

	closeOnce sync.Once
}

// New constructs FDExtra with the given configuration. A nil cfg means
// DefaultConfig.
func New(cfg *Config, opts ...Option) (*FDExtra, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := &FDExtra{config: cfg, log: o.logger}
	if h.log == nil {
		l, err := logging.New(cfg.LogLevel, cfg.Development)
		if err != nil {
			return nil, fmt.Errorf("logger init failure: %w", err)
		}
		h.log = l
	}

	if cfg.EnableMetrics {
		reg := o.registerer
		if reg == nil {
			h.registry = prometheus.NewRegistry()
			reg = h.registry
		}
		m, err := control.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("metrics init failure: %w", err)
		}
		h.metrics = m
	}

	h.enum = o.enum
	if h.enum == nil {
		strategy, _ := fdenum.ParseStrategy(cfg.EnumStrategy)
		h.fdenum = fdenum.New(fdenum.Config{
			Strategy:       strategy,
			Dir:            cfg.FDDir,
			DefaultOpenMax: cfg.DefaultOpenMax,
		}, h.log)
		h.enum = h.fdenum
	}

	h.guard = lifecycle.NewGuard(o.reserved...)
	// An injected table does not describe this process.
	if h.fdenum != nil && cfg.ReserveRuntime && !o.noRuntime {
		n, err := h.guard.ReserveRuntime(h.enum)
		if err != nil {
			return nil, fmt.Errorf("runtime descriptor reservation failure: %w", err)
		}
		h.log.Debug("reserved runtime descriptors", zap.Int("count", n))
	}
	h.closer = lifecycle.NewCloser(h.enum, h.guard,
		lifecycle.WithCloseFunc(o.closeFn),
		lifecycle.WithCloserLogger(h.log),
		lifecycle.WithCloserMetrics(h.metrics))
	h.walker = lifecycle.NewWalker(h.enum, h.guard, h.log, h.metrics)

	var region api.BlockingRegion = api.Inline
	if cfg.RegionWorkers > 0 {
		h.region = concurrency.NewRegion(cfg.RegionWorkers, h.log)
		region = h.region
	}
	h.writer = vectored.New(
		vectored.WithSyscallWriter(o.sys),
		vectored.WithWaiter(o.waiter),
		vectored.WithRegion(region),
		vectored.WithLogger(h.log),
		vectored.WithMetrics(h.metrics),
		vectored.WithMaxVectors(cfg.MaxVectors),
	)

	h.initAdvisory()

	h.probes = control.NewDebugProbes()
	if cfg.EnableDebug {
		h.registerProbes()
	}

	h.log.Debug("fdextra initialised",
		zap.String("enum_strategy", cfg.EnumStrategy),
		zap.Int("region_workers", cfg.RegionWorkers),
		zap.Bool("metrics", cfg.EnableMetrics))
	return h, nil
}

func (h *FDExtra) registerProbes() {
	control.RegisterPlatformProbes(h.probes)
	h.probes.Register("enum.open_max", func() any {
		n, err := h.enum.OpenMax()
		if err != nil {
			return err.Error()
		}
		return n
	})
	if h.fdenum != nil {
		h.probes.Register("enum.strategy", func() any { return h.fdenum.Strategy().String() })
		h.probes.Register("enum.last_used", func() any { return h.fdenum.LastUsed().String() })
		h.probes.Register("enum.dir", func() any { return h.fdenum.Dir() })
	}
	h.probes.Register("reserved.count", func() any { return h.guard.Len() })
	h.probes.Register("writer.max_vectors", func() any { return h.writer.MaxVectors() })
	if h.region != nil {
		h.probes.Register("region.stats", func() any { return h.region.Stats() })
	}
	if h.metrics != nil {
		h.probes.Register("metrics", func() any { return h.metrics.Snapshot() })
	}
	h.registerAdvisoryProbes()
}

// Config returns the configuration the facade was built with.
func (h *FDExtra) Config() Config { return *h.config }

// Logger returns the facade logger.
func (h *FDExtra) Logger() *zap.Logger { return h.log }

// Metrics returns the metrics sink, nil when metrics are disabled.
func (h *FDExtra) Metrics() *control.Metrics { return h.metrics }

// Gatherer returns the private metrics registry, or nil when metrics are
// disabled or registered on a caller-supplied registerer.
func (h *FDExtra) Gatherer() prometheus.Gatherer {
	if h.registry == nil {
		return nil
	}
	return h.registry
}

// Guard exposes the reserved-set guard so hosts can add predicates later.
func (h *FDExtra) Guard() *lifecycle.Guard { return h.guard }

// ReserveOpenDescriptors reserves every descriptor open right now, on top of
// the runtime descriptors New reserves.
func (h *FDExtra) ReserveOpenDescriptors() (int, error) {
	n, err := h.guard.ReserveOpen(h.enum)
	if err != nil {
		return 0, err
	}
	h.log.Debug("reserved open descriptors", zap.Int("count", n))
	return n, nil
}

// CloseFrom closes every non-reserved descriptor >= lowfd.
func (h *FDExtra) CloseFrom(lowfd int) error {
	return h.closer.CloseFrom(lowfd)
}

// FdWalk calls visitor for every open, non-reserved descriptor >= lowfd.
func (h *FDExtra) FdWalk(lowfd int, visitor api.Visitor) error {
	return h.walker.Walk(lowfd, visitor)
}

// WriteVectored writes bufs to target in order.
func (h *FDExtra) WriteVectored(ctx context.Context, target api.Target, bufs [][]byte) (int64, error) {
	return h.writer.WriteVectored(ctx, target, bufs)
}

// WriteValues converts []byte and string values without copying and writes
// them like WriteVectored. Other value types are rejected before any write.
func (h *FDExtra) WriteValues(ctx context.Context, target api.Target, values ...any) (int64, error) {
	bufs, err := vectored.Buffers(values...)
	if err != nil {
		return 0, err
	}
	return h.writer.WriteVectored(ctx, target, bufs)
}

// MaxVectors returns the configured vector limit.
func (h *FDExtra) MaxVectors() int { return h.writer.MaxVectors() }

// Diagnostics evaluates the registered debug probes.
func (h *FDExtra) Diagnostics() map[string]any {
	return h.probes.Dump()
}

// Close stops the blocking region workers and flushes the logger. It is
// safe to call more than once.
func (h *FDExtra) Close() error {
	h.closeOnce.Do(func() {
		if h.region != nil {
			h.region.Close()
		}
		_ = h.log.Sync()
	})
	return nil
}
