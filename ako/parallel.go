package ako

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// forEachTile runs fn for every tile index in [0, n). Each of up to
// workers goroutines builds its own state with newState and then pulls
// indices from a shared counter. The first error cancels the rest.
func forEachTile[S any](ctx context.Context, workers, n int, newState func() (S, error), fn func(ctx context.Context, state S, i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, n))

	g, ctx := errgroup.WithContext(ctx)
	var next atomic.Int64

	for range workers {
		g.Go(func() error {
			state, err := newState()
			if err != nil {
				return err
			}
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx, state, i); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
