package impl

import (
	"context"
	"runtime"

	domainerrors "signin/internal/domain/errors"

	"golang.org/x/sync/semaphore"
)

// hashPool bounds the number of bcrypt comparisons running at once.
type hashPool struct {
	sem *semaphore.Weighted
}

func newHashPool(size int) *hashPool {
	if size < 1 {
		size = runtime.GOMAXPROCS(0)
	}

	return &hashPool{sem: semaphore.NewWeighted(int64(size))}
}

// Do runs fn once a slot is free. It gives up with ErrServiceBusy when ctx ends first.
func (p *hashPool) Do(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return domainerrors.ErrServiceBusy.WrapMessage("failed to acquire hash slot")
	}
	defer p.sem.Release(1)

	fn()

	return nil
}
