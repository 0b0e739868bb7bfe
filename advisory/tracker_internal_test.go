//go:build linux || freebsd || darwin

package advisory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdextra/api"
	"github.com/momentics/fdextra/control"
)

type fakePrimitive struct {
	canQuery bool
	state    map[int]bool
	sets     int
	getErr   error
}

func (f *fakePrimitive) name() string    { return "fake" }
func (f *fakePrimitive) queryable() bool { return f.canQuery }
func (f *fakePrimitive) get(fd int) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	return f.state[fd], nil
}
func (f *fakePrimitive) set(fd int, on bool) error {
	f.sets++
	f.state[fd] = on
	return nil
}

type fakeStat map[int]identity

func (s fakeStat) stat(fd int) (identity, error) {
	id, ok := s[fd]
	if !ok {
		return identity{}, unix.EBADF
	}
	return id, nil
}

func newFakeTracker(queryable bool) (*Tracker, *fakePrimitive, fakeStat) {
	p := &fakePrimitive{canQuery: queryable, state: map[int]bool{}}
	st := fakeStat{5: {dev: 1, ino: 100}, 6: {dev: 1, ino: 101}}
	return newTracker(p, st.stat, nil, nil), p, st
}

func TestAdvice(t *testing.T) {
	assert.Equal(t, Advice(0), Off)
	assert.Equal(t, Advice(1), On)
	assert.Equal(t, On, Of(true))
	assert.False(t, Advice(99).Valid())
}

func TestTracker_DefaultsFalse(t *testing.T) {
	for _, q := range []bool{false, true} {
		tr, _, _ := newFakeTracker(q)
		on, err := tr.Get(api.Raw(5))
		require.NoError(t, err)
		assert.False(t, on)
	}
}

func TestTracker_SetInvalidKeepsState(t *testing.T) {
	tr, p, _ := newFakeTracker(false)
	_, err := tr.Set(api.Raw(5), On)
	require.NoError(t, err)

	_, err = tr.Set(api.Raw(5), Advice(99))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Equal(t, 1, p.sets)

	on, err := tr.Get(api.Raw(5))
	require.NoError(t, err)
	assert.True(t, on)
}

func TestTracker_SetReturnsTarget(t *testing.T) {
	tr, _, _ := newFakeTracker(false)
	target := api.Raw(6)
	got, err := tr.Set(target, On)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	assert.Equal(t, 1, tr.Len())
}

func TestTracker_InvalidTarget(t *testing.T) {
	tr, p, _ := newFakeTracker(false)
	_, err := tr.Set(api.Raw(-3), On)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	_, err = tr.Get(api.FromHandle(nil))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Zero(t, p.sets)
}

func TestTracker_CachedPerDescriptor(t *testing.T) {
	tr, _, _ := newFakeTracker(false)
	_, err := tr.Set(api.Raw(5), On)
	require.NoError(t, err)

	// A different number (e.g. a dup) has no advice.
	on, err := tr.Get(api.Raw(6))
	require.NoError(t, err)
	assert.False(t, on)

	_, err = tr.Set(api.Raw(5), Off)
	require.NoError(t, err)
	on, err = tr.Get(api.Raw(5))
	require.NoError(t, err)
	assert.False(t, on)
}

func TestTracker_Forget(t *testing.T) {
	tr, _, _ := newFakeTracker(false)
	_, err := tr.Set(api.Raw(5), On)
	require.NoError(t, err)
	tr.Forget(5)
	assert.Zero(t, tr.Len())
	on, err := tr.Get(api.Raw(5))
	require.NoError(t, err)
	assert.False(t, on)
}

func TestTracker_StaleIdentityDropped(t *testing.T) {
	tr, _, st := newFakeTracker(false)
	_, err := tr.Set(api.Raw(5), On)
	require.NoError(t, err)

	// fd 5 was closed and the number reused for another file.
	st[5] = identity{dev: 1, ino: 999}
	on, err := tr.Get(api.Raw(5))
	require.NoError(t, err)
	assert.False(t, on)
	assert.Zero(t, tr.Len())

	// Closed outright.
	_, err = tr.Set(api.Raw(6), On)
	require.NoError(t, err)
	delete(st, 6)
	on, err = tr.Get(api.Raw(6))
	require.NoError(t, err)
	assert.False(t, on)
}

func TestTracker_QueryableReadsKernel(t *testing.T) {
	tr, p, _ := newFakeTracker(true)
	p.state[5] = true
	on, err := tr.Get(api.Raw(5))
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, tr.Len())

	p.getErr = unix.EBADF
	_, err = tr.Get(api.Raw(5))
	assert.ErrorIs(t, err, unix.EBADF)
	assert.Zero(t, tr.Len())
}

func TestTracker_Metrics(t *testing.T) {
	m, err := control.NewMetrics(nil)
	require.NoError(t, err)
	p := &fakePrimitive{state: map[int]bool{}}
	tr := newTracker(p, fakeStat{5: {}}.stat, nil, m)
	_, err = tr.Set(api.Raw(5), On)
	require.NoError(t, err)
	assert.Equal(t, float64(1), m.Snapshot()["advisory_set_total{value=true}"])
}

func TestTracker_RealFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	defer f.Close()

	tr := NewTracker(nil, nil)
	on, err := tr.Get(api.FromHandle(f))
	require.NoError(t, err)
	assert.False(t, on)

	_, err = tr.Set(api.FromHandle(f), On)
	if err != nil {
		// tmpfs and some overlay filesystems refuse O_DIRECT.
		if errno, ok := api.Errno(err); ok && errno == unix.EINVAL {
			t.Skipf("%s not supported on this filesystem", tr.Primitive())
		}
		require.NoError(t, err)
	}
	on, err = tr.Get(api.FromHandle(f))
	require.NoError(t, err)
	assert.True(t, on)

	_, err = tr.Set(api.FromHandle(f), Off)
	require.NoError(t, err)
	on, err = tr.Get(api.FromHandle(f))
	require.NoError(t, err)
	assert.False(t, on)
}
