// Package testutil holds helpers shared by store and cache tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"licensing/internal/sentinel"
)

// ConcurrentResult tallies the outcomes of a concurrent run.
type ConcurrentResult struct {
	Successes  int32
	Duplicates int32
	NotFounds  int32
	Errors     int32
}

// Total returns the number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Duplicates + r.NotFounds + r.Errors
}

// RunConcurrent runs fn in n goroutines started together and sorts the
// returned errors by sentinel.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		res   [4]atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			err := fn(idx)
			switch {
			case err == nil:
				res[0].Add(1)
			case errors.Is(err, sentinel.ErrAlreadyExists):
				res[1].Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				res[2].Add(1)
			default:
				res[3].Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes:  res[0].Load(),
		Duplicates: res[1].Load(),
		NotFounds:  res[2].Load(),
		Errors:     res[3].Load(),
	}
}

// RunConcurrentCtx is RunConcurrent for functions that take a context.
func RunConcurrentCtx(ctx context.Context, n int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	return RunConcurrent(n, func(idx int) error {
		return fn(ctx, idx)
	})
}
