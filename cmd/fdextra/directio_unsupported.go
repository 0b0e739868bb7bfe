//go:build !linux && !freebsd && !darwin

// File: cmd/fdextra/directio_unsupported.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/momentics/fdextra/api"
)

type directioCmd struct{}

func (*directioCmd) Name() string           { return "directio" }
func (*directioCmd) Synopsis() string       { return "uncached I/O (not available on this platform)" }
func (*directioCmd) Usage() string          { return "directio file\n" }
func (*directioCmd) SetFlags(*flag.FlagSet) {}

func (*directioCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	return fail("%v", api.NotSupported("directio"))
}
