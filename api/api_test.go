package api_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
)

func TestError_IsAndUnwrap(t *testing.T) {
	err := api.SystemError("writev", unix.EPIPE)
	assert.ErrorIs(t, err, api.ErrSystem)
	assert.ErrorIs(t, err, unix.EPIPE)
	assert.NotErrorIs(t, err, api.ErrInvalidArgument)
	assert.Equal(t, "writev: system-error: broken pipe", err.Error())

	errno, ok := err.Errno()
	require.True(t, ok)
	assert.Equal(t, unix.EPIPE, errno)

	wrapped := errors.Join(errors.New("context"), err)
	errno, ok = api.Errno(wrapped)
	require.True(t, ok)
	assert.Equal(t, unix.EPIPE, errno)

	inv := api.InvalidArgument("close_from", "negative lowfd %d", -1)
	assert.ErrorIs(t, inv, api.ErrInvalidArgument)
	_, ok = inv.Errno()
	assert.False(t, ok)

	assert.ErrorIs(t, api.NotSupported("directio"), api.ErrNotSupported)
	assert.Equal(t, "runtime-error", api.ErrCodeRuntime.String())
}

func TestTarget_Descriptor(t *testing.T) {
	fd, err := api.Raw(5).Descriptor("op")
	require.NoError(t, err)
	assert.Equal(t, 5, fd)

	_, err = api.Raw(-1).Descriptor("op")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = api.FromHandle(nil).Descriptor("op")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = api.Target{}.Descriptor("op")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestTarget_FileHandle(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "h"))
	require.NoError(t, err)

	target := api.FromHandle(f)
	assert.True(t, target.IsHandle())
	assert.Same(t, f, target.Handle())

	fd, err := target.Descriptor("op")
	require.NoError(t, err)
	assert.Equal(t, int(f.Fd()), fd)

	require.NoError(t, f.Close())
	_, err = target.Descriptor("op")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestInlineRegion(t *testing.T) {
	ran := false
	require.NoError(t, api.Inline.Run(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, api.Inline.Run(ctx, func() { t.Error("must not run") }), context.Canceled)
}
