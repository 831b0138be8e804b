// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parallel

import (
	"context"
	"runtime"

	"github.com/arrowlane/cq/internal/workerr"
	"golang.org/x/sync/errgroup"
)

// Combine is an associative binary operator over T.
type Combine[T any] func(a, b T) T

// Accumulate reduces items to a single value using combine, which must
// be associative, folding the result of joining all workers' partial
// reductions into init. identity must be combine's identity element
// (see [AdditionIdentity] and friends): each worker's block is folded
// starting from identity, not init, so init's contribution is applied
// exactly once regardless of how many workers run — passing init where
// identity belongs would instead apply it once per worker.
//
// items is split into at most workers contiguous chunks (default
// runtime.GOMAXPROCS(0) if workers == 0), each reduced sequentially by
// its own goroutine, and the partial results are then combined in
// input order, starting from init, so the result does not depend on
// combine's argument order beyond what associativity already permits.
//
// Returns ErrInvalidArgument if combine is nil or workers is negative.
func Accumulate[T any](ctx context.Context, items []T, init, identity T, combine Combine[T], workers int) (T, error) {
	if combine == nil || workers < 0 {
		return init, ErrInvalidArgument
	}
	if len(items) == 0 {
		return init, nil
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := splitChunks(len(items), workers)

	partials := make([]T, len(chunks))
	var errs workerr.Cell
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			acc := identity
			for j := c.start; j < c.end; j++ {
				if err := gctx.Err(); err != nil {
					errs.Set(err)
					return err
				}
				acc = combine(acc, items[j])
			}
			partials[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if recorded := errs.Err(); recorded != nil {
			err = recorded
		}
		return init, &WorkerError{Algorithm: "Accumulate", Err: err}
	}

	result := init
	for _, p := range partials {
		result = combine(result, p)
	}
	return result, nil
}

type chunk struct {
	start, end int
}

// splitChunks divides [0, n) into at most workers contiguous,
// near-equal ranges, skipping any that would be empty.
func splitChunks(n, workers int) []chunk {
	if workers > n {
		workers = n
	}
	base := n / workers
	rem := n % workers
	chunks := make([]chunk, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, chunk{start: start, end: start + size})
		start += size
	}
	return chunks
}
