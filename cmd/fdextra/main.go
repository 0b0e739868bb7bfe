// File: cmd/fdextra/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// fdextra is a small command-line front end for the fdextra library: list
// descriptors, close inherited descriptors before exec, issue vectored writes
// and toggle uncached I/O.

package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/momentics/fdextra/facade"
)

var (
	configPath = flag.String("config", "", "path to a TOML configuration file")
	logLevel   = flag.String("log", "", "log level override (debug, info, warn, error, off)")
)

// newFacade builds the library facade from the global flags.
func newFacade() (*facade.FDExtra, error) {
	cfg := facade.DefaultConfig()
	if *configPath != "" {
		loaded, err := facade.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.Development = true
	return facade.New(cfg)
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&listCmd{}, "")
	subcommands.Register(&closeFromCmd{}, "")
	subcommands.Register(&writevCmd{}, "")
	subcommands.Register(&diagCmd{}, "")
	subcommands.Register(&directioCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
