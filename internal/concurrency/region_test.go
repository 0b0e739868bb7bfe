package concurrency

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/fdextra/api"
)

func TestRegion_RunsTasks(t *testing.T) {
	r := NewRegion(4, nil)
	defer r.Close()

	var sum atomic.Int64
	var g errgroup.Group
	for i := 1; i <= 100; i++ {
		v := int64(i)
		g.Go(func() error {
			return r.Run(context.Background(), func() { sum.Add(v) })
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int64(5050), sum.Load())

	stats := r.Stats()
	assert.Equal(t, int64(100), stats["submitted_tasks"])
	assert.Equal(t, int64(100), stats["completed_tasks"])
	assert.Equal(t, int64(4), stats["num_workers"])
}

func TestRegion_DefaultWorkers(t *testing.T) {
	r := NewRegion(0, nil)
	defer r.Close()
	assert.Positive(t, r.NumWorkers())
}

func TestRegion_ClosedRejects(t *testing.T) {
	r := NewRegion(1, nil)
	r.Close()
	r.Close() // idempotent

	err := r.Run(context.Background(), func() { t.Error("must not run") })
	assert.ErrorIs(t, err, api.ErrRegionClosed)
}

func TestRegion_WithdrawsQueuedTaskOnCancel(t *testing.T) {
	r := NewRegion(1, nil)
	defer r.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = r.Run(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	var ran atomic.Bool
	err := r.Run(ctx, func() { ran.Store(true) })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	// A follow-up task proves the worker skipped the withdrawn one.
	require.NoError(t, r.Run(context.Background(), func() {}))
	assert.False(t, ran.Load())
	assert.Equal(t, int64(1), r.Stats()["withdrawn_tasks"])
}

func TestRegion_StartedTaskRunsToCompletion(t *testing.T) {
	r := NewRegion(1, nil)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var finished atomic.Bool
	err := r.Run(ctx, func() {
		cancel()
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
	})
	require.NoError(t, err)
	assert.True(t, finished.Load())
}

func TestRegion_PanicBecomesError(t *testing.T) {
	r := NewRegion(1, nil)
	defer r.Close()

	err := r.Run(context.Background(), func() { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	// Worker survives.
	require.NoError(t, r.Run(context.Background(), func() {}))
}

func TestRegion_CancelledBeforeSubmit(t *testing.T) {
	r := NewRegion(1, nil)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, func() { t.Error("must not run") })
	assert.ErrorIs(t, err, context.Canceled)
}
