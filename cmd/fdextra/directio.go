//go:build linux || freebsd || darwin

// File: cmd/fdextra/directio.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/momentics/fdextra/advisory"
	"github.com/momentics/fdextra/api"
)

// directioCmd shows or sets uncached I/O on a file.
type directioCmd struct {
	set string
}

func (*directioCmd) Name() string     { return "directio" }
func (*directioCmd) Synopsis() string { return "show or set uncached I/O on a file" }
func (*directioCmd) Usage() string {
	return "directio [-set on|off] file\n  Open file read-write, optionally apply the advice, and print the state.\n"
}

func (c *directioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "advice to apply: on or off")
}

func (c *directioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	advice, apply, err := parseAdvice(c.set)
	if err != nil {
		return fail("%v", err)
	}
	h, err := newFacade()
	if err != nil {
		return fail("%v", err)
	}
	defer h.Close()

	file, err := os.OpenFile(f.Arg(0), os.O_RDWR, 0)
	if err != nil {
		return fail("%v", err)
	}
	defer file.Close()
	target := api.FromHandle(file)

	if apply {
		if _, err := h.SetAdvisory(target, advice); err != nil {
			return fail("%v", err)
		}
	}

	on, err := h.Advisory(target)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("%s\t%v\n", f.Arg(0), on)
	return subcommands.ExitSuccess
}

// parseAdvice validates the -set value. An empty value means the state is
// only reported.
func parseAdvice(s string) (advisory.Advice, bool, error) {
	switch s {
	case "":
		return advisory.Of(false), false, nil
	case "on", "off":
		return advisory.Of(s == "on"), true, nil
	default:
		return advisory.Of(false), false, fmt.Errorf("invalid -set value %q", s)
	}
}
