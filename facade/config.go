// File: facade/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Facade configuration: defaults, TOML loading and validation.

package facade

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/momentics/fdextra/internal/fdenum"
	"github.com/momentics/fdextra/internal/logging"
	"github.com/momentics/fdextra/vectored"
)

// Config holds parameters immutable per FDExtra instance.
type Config struct {
	RegionWorkers  int    `toml:"region_workers"`   // Locked-thread workers for writev; 0 runs inline
	EnumStrategy   string `toml:"enum_strategy"`    // "auto", "directory" or "probe"
	FDDir          string `toml:"fd_dir"`           // Descriptor directory override
	DefaultOpenMax int    `toml:"default_open_max"` // Last open_max fallback; negative disables it
	MaxVectors     int    `toml:"max_vectors"`      // Vector limit, at most vectored.MaxVectors
	ReserveRuntime bool   `toml:"reserve_runtime"`  // Keep the Go runtime's descriptors out of CloseFrom and FdWalk
	LogLevel       string `toml:"log_level"`        // zap level name or "off"
	Development    bool   `toml:"development"`      // Human-friendly log encoding
	EnableMetrics  bool   `toml:"enable_metrics"`   // Collect prometheus counters
	EnableDebug    bool   `toml:"enable_debug"`     // Register debug probes
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		RegionWorkers:  2,
		EnumStrategy:   "auto",
		DefaultOpenMax: fdenum.HardDefaultOpenMax,
		MaxVectors:     vectored.MaxVectors,
		ReserveRuntime: true,
		LogLevel:       "info",
		EnableMetrics:  true,
		EnableDebug:    true,
	}
}

// LoadConfig reads a TOML file over the defaults. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges and names.
func (c *Config) Validate() error {
	if c.RegionWorkers < 0 {
		return fmt.Errorf("region_workers must not be negative, got %d", c.RegionWorkers)
	}
	if _, err := fdenum.ParseStrategy(c.EnumStrategy); err != nil {
		return err
	}
	if c.MaxVectors < 0 || c.MaxVectors > vectored.MaxVectors {
		return fmt.Errorf("max_vectors must be within [0, %d], got %d", vectored.MaxVectors, c.MaxVectors)
	}
	return logging.CheckLevel(c.LogLevel)
}
