package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item concurrently and returns results in input
// order. The first error cancels the context passed to the other calls and
// is returned.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	eg, ctx := errgroup.WithContext(ctx)

	for i, item := range items {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = goerr.New("panic in async map", goerr.V("recover", r), goerr.V("stack", string(debug.Stack())))
				}
			}()

			result, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Each calls fn for every item concurrently and waits for all of them. At
// most limit calls run at the same time; limit <= 0 means no limit. A panic
// in one call is logged and does not affect the others.
func Each[T any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T)) {
	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for _, item := range items {
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					ctxlog.From(ctx).Error("panic in async handler",
						"recover", r,
						"stack", string(debug.Stack()))
				}
			}()

			fn(ctx, item)
			return nil
		})
	}

	_ = eg.Wait()
}
