// File: internal/fdenum/enum.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fdenum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/internal/logging"
)

// HardDefaultOpenMax is the table size assumed when no limit can be queried.
const HardDefaultOpenMax = 1024

// Strategy selects how descriptors are discovered.
type Strategy int32

const (
	// Auto uses the directory listing when the platform has one and it can be
	// opened, and probing otherwise.
	Auto Strategy = iota
	// Directory always reads the descriptor directory; failure is an error.
	Directory
	// Probe always checks every number below open_max.
	Probe
)

func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case Directory:
		return "directory"
	case Probe:
		return "probe"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a config string to a Strategy. Empty means Auto.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "directory", "dir":
		return Directory, nil
	case "probe":
		return Probe, nil
	}
	return Auto, fmt.Errorf("unknown enumeration strategy %q", s)
}

// Config tunes an Enumerator.
type Config struct {
	Strategy Strategy
	// Dir overrides the platform descriptor directory.
	Dir string
	// DefaultOpenMax is the last open_max fallback. Zero means
	// HardDefaultOpenMax; negative disables the fallback so an unqueryable
	// limit becomes an error.
	DefaultOpenMax int
}

// limitSource is one step of the open_max resolution chain.
type limitSource struct {
	name  string
	query func() (int, bool)
}

// Enumerator yields currently open descriptors.
type Enumerator struct {
	strategy       Strategy
	dir            string
	defaultOpenMax int
	sources        []limitSource
	valid          func(fd int) bool
	log            *zap.Logger

	lastUsed atomic.Int32
}

// New builds an enumerator for the running platform.
func New(cfg Config, log *zap.Logger) *Enumerator {
	log = logging.OrNop(log)
	dir := cfg.Dir
	if dir == "" {
		dir = platformDir
	}
	def := cfg.DefaultOpenMax
	if def == 0 {
		def = HardDefaultOpenMax
	}
	e := &Enumerator{
		strategy:       cfg.Strategy,
		dir:            dir,
		defaultOpenMax: def,
		sources:        platformLimitSources(),
		valid:          isOpen,
		log:            log.Named("enum"),
	}
	e.lastUsed.Store(int32(cfg.Strategy))
	return e
}

// Strategy returns the configured strategy.
func (e *Enumerator) Strategy() Strategy { return e.strategy }

// LastUsed returns the concrete strategy used by the most recent scan, or the
// configured one before any scan.
func (e *Enumerator) LastUsed() Strategy { return Strategy(e.lastUsed.Load()) }

// Dir returns the descriptor directory, empty when the platform has none.
func (e *Enumerator) Dir() string { return e.dir }

// OpenMax resolves the descriptor table size: hard RLIMIT_NOFILE, soft
// RLIMIT_NOFILE, the platform OPEN_MAX constant, then the configured default.
// Values must be positive and fit a C int.
func (e *Enumerator) OpenMax() (int, error) {
	for _, src := range e.sources {
		if n, ok := src.query(); ok && n > 0 && n <= math.MaxInt32 {
			return n, nil
		}
	}
	if e.defaultOpenMax > 0 {
		return e.defaultOpenMax, nil
	}
	return 0, &api.Error{Code: api.ErrCodeRuntime, Op: "open_max", Err: api.ErrOpenMaxUnresolved}
}

// Snapshot returns the open descriptors >= lowfd as seen at scan time.
func (e *Enumerator) Snapshot(lowfd int) ([]int, error) {
	if lowfd < 0 {
		lowfd = 0
	}
	switch e.strategy {
	case Directory:
		return e.scanDirectory(lowfd)
	case Probe:
		return e.probe(lowfd)
	}
	if e.dir != "" {
		fds, err := e.scanDirectory(lowfd)
		if err == nil {
			return fds, nil
		}
		e.log.Debug("descriptor directory unavailable, probing", zap.String("dir", e.dir), zap.Error(err))
	}
	return e.probe(lowfd)
}

// Each calls fn for every descriptor in the snapshot. The scan completes
// before fn is first called, so fn may close descriptors freely. An error
// from fn stops the iteration and is returned as is.
func (e *Enumerator) Each(lowfd int, fn func(fd int) error) error {
	fds, err := e.Snapshot(lowfd)
	if err != nil {
		return err
	}
	for _, fd := range fds {
		if err := fn(fd); err != nil {
			return err
		}
	}
	return nil
}

func (e *Enumerator) scanDirectory(lowfd int) ([]int, error) {
	if e.dir == "" {
		return nil, api.NotSupported("fd directory scan")
	}
	fds, err := scanDir(e.dir, lowfd)
	if err != nil {
		return nil, api.SystemError("scan "+e.dir, err)
	}
	e.lastUsed.Store(int32(Directory))
	return fds, nil
}

func (e *Enumerator) probe(lowfd int) ([]int, error) {
	max, err := e.OpenMax()
	if err != nil {
		return nil, err
	}
	var fds []int
	for fd := lowfd; fd < max; fd++ {
		if e.valid(fd) {
			fds = append(fds, fd)
		}
	}
	e.lastUsed.Store(int32(Probe))
	return fds, nil
}

// parseFD accepts plain unsigned decimal entry names.
func parseFD(name string) (int, bool) {
	if name == "" || name[0] == '.' {
		return 0, false
	}
	n, err := strconv.ParseUint(name, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
