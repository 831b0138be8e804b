// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"code.hybscloud.com/iox"
	"github.com/arrowlane/cq/internal/workerr"
	"github.com/arrowlane/cq/ring"
	"golang.org/x/sync/errgroup"
)

// ForEach applies fn to every element of items, split across at most
// workers goroutines in contiguous chunks (default
// runtime.GOMAXPROCS(0) if workers == 0). Suited to workloads where
// every element costs roughly the same amount of work; for skewed
// per-element cost, prefer [ForEachDynamic].
//
// Returns ErrInvalidArgument if fn is nil or workers is negative.
func ForEach[T any](ctx context.Context, items []T, fn func(item T) error, workers int) error {
	if fn == nil || workers < 0 {
		return ErrInvalidArgument
	}
	if len(items) == 0 {
		return nil
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := splitChunks(len(items), workers)

	var errs workerr.Cell
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			for j := c.start; j < c.end; j++ {
				if err := gctx.Err(); err != nil {
					errs.Set(err)
					return err
				}
				if err := fn(items[j]); err != nil {
					errs.Set(err)
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if recorded := errs.Err(); recorded != nil {
			err = recorded
		}
		return &WorkerError{Algorithm: "ForEach", Err: err}
	}
	return nil
}

// ForEachDynamic applies fn to every element of items using a single
// dispatcher goroutine feeding a [ring.SPMC] index queue, drained by
// workers worker goroutines pulling one index at a time. Unlike
// [ForEach]'s static chunking, a worker that finishes its current
// element immediately pulls the next available index, so skewed
// per-element cost does not leave some workers idle while others are
// still working through an oversized chunk.
//
// Returns ErrInvalidArgument if fn is nil or workers is negative.
func ForEachDynamic[T any](ctx context.Context, items []T, fn func(item T) error, workers int) error {
	if fn == nil || workers < 0 {
		return ErrInvalidArgument
	}
	if len(items) == 0 {
		return nil
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	q := ring.NewSPMC[int](dynamicQueueCapacity(len(items)))
	var errs workerr.Cell
	var processed atomic.Int64
	total := int64(len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		backoff := iox.Backoff{}
		for i := range items {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				idx := i
				if err := q.Enqueue(&idx); err == nil {
					backoff.Reset()
					break
				}
				backoff.Wait()
			}
		}
		q.Drain()
		return nil
	})

	for range workers {
		g.Go(func() error {
			backoff := iox.Backoff{}
			for {
				if processed.Load() == total {
					return nil
				}
				idx, err := q.Dequeue()
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					backoff.Wait()
					continue
				}
				backoff.Reset()
				if err := fn(items[idx]); err != nil {
					errs.Set(err)
					return err
				}
				processed.Add(1)
			}
		})
	}

	if err := g.Wait(); err != nil {
		if recorded := errs.Err(); recorded != nil {
			err = recorded
		}
		return &WorkerError{Algorithm: "ForEachDynamic", Err: err}
	}
	return nil
}

func dynamicQueueCapacity(n int) int {
	if n < 16 {
		return 16
	}
	if n > 4096 {
		return 4096
	}
	return n
}
