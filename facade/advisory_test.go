//go:build linux || freebsd || darwin

package facade_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/fdextra/advisory"
	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/facade"
)

func TestFacade_Advisory(t *testing.T) {
	h, err := facade.New(quietConfig())
	require.NoError(t, err)
	defer h.Close()

	f, err := os.Create(filepath.Join(t.TempDir(), "adv"))
	require.NoError(t, err)
	defer f.Close()
	target := api.FromHandle(f)

	on, err := h.Advisory(target)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = h.SetAdvisory(target, advisory.Advice(99))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	on, err = h.Advisory(target)
	require.NoError(t, err)
	assert.False(t, on)

	assert.Contains(t, h.Diagnostics(), "advisory.primitive")
	h.NotifyClosed(int(f.Fd()))
}
