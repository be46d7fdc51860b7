package impl

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domainerrors "signin/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPool_DefaultsToGOMAXPROCS(t *testing.T) {
	pool := newHashPool(0)

	n := int64(runtime.GOMAXPROCS(0))
	assert.True(t, pool.sem.TryAcquire(n))
	assert.False(t, pool.sem.TryAcquire(1))
	pool.sem.Release(n)
}

func TestHashPool_BoundsConcurrency(t *testing.T) {
	pool := newHashPool(2)

	var (
		running atomic.Int32
		peak    atomic.Int32
		wg      sync.WaitGroup
	)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pool.Do(context.Background(), func() {
				cur := running.Add(1)
				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestHashPool_CancelledContext(t *testing.T) {
	pool := newHashPool(1)
	require.True(t, pool.sem.TryAcquire(1))
	defer pool.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := pool.Do(ctx, func() { called = true })

	assert.ErrorIs(t, err, domainerrors.ErrServiceBusy)
	assert.False(t, called)
}
