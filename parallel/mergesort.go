// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parallel

import (
	"context"
	"runtime"
	"sort"

	"github.com/arrowlane/cq/internal/workerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// sequentialThreshold is the slice length at or below which mergeSort
// falls back to sort.Slice instead of forking further, so recursion bottoms
// out in a single call large enough to amortize goroutine overhead.
const sequentialThreshold = 2048

// MergeSort sorts a copy of items (items itself is left untouched) using
// less, forking recursively into goroutines until a slice is no longer
// than an internal sequential threshold. The number of concurrently active
// sort goroutines is capped at workers (default
// runtime.GOMAXPROCS(0) if workers == 0) via a weighted semaphore, so
// deep recursion on a large input cannot spawn unbounded goroutines.
//
// Returns ErrInvalidArgument if less is nil or workers is negative.
func MergeSort[T any](ctx context.Context, items []T, less func(a, b T) bool, workers int) ([]T, error) {
	if less == nil || workers < 0 {
		return nil, ErrInvalidArgument
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]T, len(items))
	copy(out, items)
	if len(out) < 2 {
		return out, nil
	}

	// The goroutine that starts the sort counts as one of the workers;
	// the semaphore bounds only the goroutines forked beneath it.
	sem := semaphore.NewWeighted(int64(workers - 1))
	var errs workerr.Cell
	g, gctx := errgroup.WithContext(ctx)

	buf := make([]T, len(out))
	g.Go(func() error {
		return mergeSort(gctx, out, buf, less, sem, &errs)
	})

	if err := g.Wait(); err != nil {
		if recorded := errs.Err(); recorded != nil {
			err = recorded
		}
		return nil, &WorkerError{Algorithm: "MergeSort", Err: err}
	}
	return out, nil
}

func mergeSort[T any](ctx context.Context, s, buf []T, less func(a, b T) bool, sem *semaphore.Weighted, errs *workerr.Cell) error {
	if err := ctx.Err(); err != nil {
		errs.Set(err)
		return err
	}
	if len(s) <= sequentialThreshold {
		sort.Slice(s, func(i, j int) bool { return less(s[i], s[j]) })
		return nil
	}

	mid := len(s) / 2
	left, right := s[:mid], s[mid:]
	leftBuf, rightBuf := buf[:mid], buf[mid:]

	// Acquire a semaphore slot to fork the right half onto a new
	// goroutine; if none is free, sort it inline instead of blocking
	// forever waiting for a worker that may be busy on our own
	// ancestor frame.
	forked := sem.TryAcquire(1)

	var g errgroup.Group
	if forked {
		g.Go(func() error {
			defer sem.Release(1)
			return mergeSort(ctx, right, rightBuf, less, sem, errs)
		})
	} else {
		if err := mergeSort(ctx, right, rightBuf, less, sem, errs); err != nil {
			return err
		}
	}

	if err := mergeSort(ctx, left, leftBuf, less, sem, errs); err != nil {
		errs.Set(err)
		if forked {
			g.Wait()
		}
		return err
	}

	if forked {
		if err := g.Wait(); err != nil {
			errs.Set(err)
			return err
		}
	}

	merge(s, left, right, buf, less)
	return nil
}

// merge merges the now-sorted left and right (which alias the front and
// back of s) into buf, then copies the result back into s.
func merge[T any](s, left, right, buf []T, less func(a, b T) bool) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if less(right[j], left[i]) {
			buf[k] = right[j]
			j++
		} else {
			buf[k] = left[i]
			i++
		}
		k++
	}
	for i < len(left) {
		buf[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		buf[k] = right[j]
		j++
		k++
	}
	copy(s, buf[:k])
}
