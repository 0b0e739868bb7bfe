//go:build linux || freebsd || darwin

package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/fdextra/advisory"
)

func TestParseAdvice(t *testing.T) {
	for in, want := range map[string]struct {
		advice advisory.Advice
		apply  bool
	}{
		"":    {advisory.Off, false},
		"on":  {advisory.On, true},
		"off": {advisory.Off, true},
	} {
		advice, apply, err := parseAdvice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want.advice, advice, in)
		assert.Equal(t, want.apply, apply, in)
	}

	for _, in := range []string{"yes", "ON", "1"} {
		_, _, err := parseAdvice(in)
		assert.ErrorContains(t, err, "invalid -set value", in)
	}
}

func directioFlags(t *testing.T, args ...string) (*directioCmd, *flag.FlagSet) {
	t.Helper()
	cmd := &directioCmd{}
	fs := flag.NewFlagSet("directio", flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd, fs
}

func TestDirectioCmd_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	cmd, fs := directioFlags(t, "-set", "bogus", path)
	assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), fs))

	cmd, fs = directioFlags(t)
	assert.Equal(t, subcommands.ExitUsageError, cmd.Execute(context.Background(), fs))
}
