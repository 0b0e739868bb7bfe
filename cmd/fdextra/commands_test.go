package main

import (
	"context"
	"flag"
	"strconv"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWritevValues(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, writevValues([]string{"a", "b"}, false))
	assert.Equal(t, []any{"a", "\n", "b", "\n"}, writevValues([]string{"a", "b"}, true))
	assert.Empty(t, writevValues(nil, true))
}

func TestWritevCmd_ExecuteWritesArguments(t *testing.T) {
	*logLevel = "off"
	defer func() { *logLevel = "" }()

	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	defer unix.Close(p[0])
	defer unix.Close(p[1])

	cmd := &writevCmd{}
	fs := flag.NewFlagSet("writev", flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-fd", strconv.Itoa(p[1]), "-n", "a", "b"}))

	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), fs))
	buf := make([]byte, 16)
	n, err := unix.Read(p[0], buf)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(buf[:n]))
}
