// Package perf provides bounded, order-preserving concurrency helpers.
package perf

import (
	"context"
	"fmt"
	"sync"
)

// Map applies fn to every item with at most limit calls in flight and
// returns the results in the order of items, regardless of the order in
// which the calls complete.
//
// The first error cancels the context handed to the remaining calls and
// is returned as is; no partial results are returned. A limit <= 0 means
// one goroutine per item.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, int, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	// Create a cancellable context to cancel remaining work on error
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	sem := make(chan struct{}, limit)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("task %d panicked: %v", idx, r))
				}
			}()

			select {
			case sem <- struct{}{}: // Acquire
				defer func() { <-sem }() // Release
			case <-ctx.Done():
				return // Context cancelled, exit early
			}
			// A slot may have been granted after cancellation.
			if ctx.Err() != nil {
				return
			}

			res, err := fn(ctx, idx, it)
			if err != nil {
				fail(err)
				return
			}
			// Each goroutine owns exactly one index.
			results[idx] = res
		}(i, item)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	// The parent context may have ended while the last tasks skipped.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
