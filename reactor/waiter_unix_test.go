//go:build unix

package reactor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/reactor"
)

func nonblockingPipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	t.Cleanup(func() {
		unix.Close(p[0])
		unix.Close(p[1])
	})
	require.NoError(t, unix.SetNonblock(p[1], true))
	return p[0], p[1]
}

func fillPipe(t *testing.T, fd int) {
	t.Helper()
	chunk := make([]byte, 4096)
	for {
		_, err := unix.Write(fd, chunk)
		if err == unix.EAGAIN {
			return
		}
		require.NoError(t, err)
	}
}

func TestPollWaiter_ReadyImmediately(t *testing.T) {
	_, w := nonblockingPipe(t)
	require.NoError(t, reactor.NewPollWaiter().WaitWritable(context.Background(), w))
}

func TestPollWaiter_HonoursDeadline(t *testing.T) {
	_, w := nonblockingPipe(t)
	fillPipe(t, w)

	waiter := &reactor.PollWaiter{Slice: 5 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := waiter.WaitWritable(ctx, w)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollWaiter_WakesWhenDrained(t *testing.T) {
	r, w := nonblockingPipe(t)
	fillPipe(t, w)

	go func() {
		time.Sleep(10 * time.Millisecond)
		buf := make([]byte, 1<<20)
		for {
			n, err := unix.Read(r, buf)
			if err != nil || n < len(buf) {
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, reactor.NewPollWaiter().WaitWritable(ctx, w))
}

func TestPollWaiter_ClosedDescriptor(t *testing.T) {
	_, w := nonblockingPipe(t)
	fd, err := unix.Dup(w)
	require.NoError(t, err)
	require.NoError(t, unix.Close(fd))

	err = reactor.NewPollWaiter().WaitWritable(context.Background(), fd)
	assert.ErrorIs(t, err, unix.EBADF)
}
