// File: cmd/fdextra/commands.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/subcommands"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
)

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "fdextra: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// listCmd prints the open descriptors.
type listCmd struct {
	low int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list open descriptors" }
func (*listCmd) Usage() string {
	return "list [-low N]\n  Print every open descriptor >= N with its target when known.\n"
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.low, "low", 0, "lowest descriptor to report")
}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	h, err := newFacade()
	if err != nil {
		return fail("%v", err)
	}
	defer h.Close()

	dir, _ := h.Diagnostics()["enum.dir"].(string)
	var fds []int
	if err := h.FdWalk(c.low, func(fd int) error {
		fds = append(fds, fd)
		return nil
	}); err != nil {
		return fail("%v", err)
	}
	sort.Ints(fds)
	for _, fd := range fds {
		target := ""
		if dir != "" {
			target, _ = os.Readlink(filepath.Join(dir, strconv.Itoa(fd)))
		}
		fmt.Printf("%d\t%s\n", fd, target)
	}
	return subcommands.ExitSuccess
}

// closeFromCmd closes inherited descriptors and then execs a program.
type closeFromCmd struct {
	low int
}

func (*closeFromCmd) Name() string     { return "closefrom" }
func (*closeFromCmd) Synopsis() string { return "close descriptors >= N, then exec a command" }
func (*closeFromCmd) Usage() string {
	return "closefrom [-low N] -- program [args...]\n  Close every descriptor >= N (default 3) and replace this process with program.\n"
}

func (c *closeFromCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.low, "low", 3, "first descriptor to close")
}

func (c *closeFromCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path, err := exec.LookPath(f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}
	h, err := newFacade()
	if err != nil {
		return fail("%v", err)
	}
	if err := h.CloseFrom(c.low); err != nil {
		return fail("%v", err)
	}
	// The runtime's descriptors stayed reserved and are close-on-exec.
	err = unix.Exec(path, f.Args(), os.Environ())
	return fail("exec %s: %v", path, err)
}

// writevCmd writes its arguments to a descriptor in one vectored write.
type writevCmd struct {
	fd      int
	newline bool
}

func (*writevCmd) Name() string     { return "writev" }
func (*writevCmd) Synopsis() string { return "write arguments with a single vectored write" }
func (*writevCmd) Usage() string {
	return "writev [-fd N] [-n] args...\n  Write each argument as one buffer to descriptor N (default 1).\n"
}

func (c *writevCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.fd, "fd", 1, "descriptor to write to")
	f.BoolVar(&c.newline, "n", false, "append a newline buffer after each argument")
}

func (c *writevCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	h, err := newFacade()
	if err != nil {
		return fail("%v", err)
	}
	defer h.Close()

	n, err := h.WriteValues(ctx, api.Raw(c.fd), writevValues(f.Args(), c.newline)...)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes\n", n)
	return subcommands.ExitSuccess
}

// writevValues turns the arguments into write buffers, one per argument,
// each followed by a newline buffer when newline is set.
func writevValues(args []string, newline bool) []any {
	values := make([]any, 0, 2*len(args))
	for _, a := range args {
		values = append(values, a)
		if newline {
			values = append(values, "\n")
		}
	}
	return values
}

// diagCmd prints the debug probes.
type diagCmd struct{}

func (*diagCmd) Name() string           { return "diag" }
func (*diagCmd) Synopsis() string       { return "print runtime diagnostics" }
func (*diagCmd) Usage() string          { return "diag\n  Print every debug probe value.\n" }
func (*diagCmd) SetFlags(*flag.FlagSet) {}

func (*diagCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	h, err := newFacade()
	if err != nil {
		return fail("%v", err)
	}
	defer h.Close()

	d := h.Diagnostics()
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("%s\t%v\n", k, d[k])
	}
	return subcommands.ExitSuccess
}
