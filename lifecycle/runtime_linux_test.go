//go:build linux

package lifecycle_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/internal/fdenum"
	"github.com/momentics/fdextra/lifecycle"
)

// pollerFDs lists the netpoller descriptors by their /proc link target.
func pollerFDs(t *testing.T) []int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	var fds []int
	for _, e := range entries {
		fd, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err != nil {
			continue
		}
		if target == "anon_inode:[eventpoll]" || target == "anon_inode:[eventfd]" {
			fds = append(fds, fd)
		}
	}
	return fds
}

func TestGuard_ReserveRuntime(t *testing.T) {
	enum := fdenum.New(fdenum.Config{}, nil)
	g := lifecycle.NewGuard()
	n, err := g.ReserveRuntime(enum)
	require.NoError(t, err)

	poller := pollerFDs(t)
	require.NotEmpty(t, poller, "netpoller should be initialised")
	assert.GreaterOrEqual(t, n, len(poller))
	for _, fd := range poller {
		assert.True(t, g.IsReserved(fd), "poller fd %d", fd)
	}

	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	defer unix.Close(p[0])
	defer unix.Close(p[1])
	assert.False(t, g.IsReserved(p[0]))
	assert.False(t, g.IsReserved(p[1]))
}

func TestWalk_SkipsRuntimeDescriptors(t *testing.T) {
	enum := fdenum.New(fdenum.Config{}, nil)
	g := lifecycle.NewGuard()
	_, err := g.ReserveRuntime(enum)
	require.NoError(t, err)

	var seen []int
	require.NoError(t, lifecycle.NewWalker(enum, g, nil, nil).Walk(0, func(fd int) error {
		seen = append(seen, fd)
		return nil
	}))
	for _, fd := range pollerFDs(t) {
		assert.NotContains(t, seen, fd)
	}
}
