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

// Prefix computes the inclusive prefix scan of items under combine,
// returned with the identity element prepended:
// result[0] = identity, result[i+1] = combine(result[i], items[i]).
// The returned slice therefore has len(items)+1 elements. combine must
// be associative; identity must be its identity element.
//
// The classic two-pass parallel scan: each of up to workers chunks is
// scanned locally and independently, the chunk totals are combined
// sequentially into per-chunk offsets, and a second parallel pass folds
// each chunk's offset into its local results.
//
// Returns ErrInvalidArgument if combine is nil or workers is negative.
func Prefix[T any](ctx context.Context, items []T, identity T, combine Combine[T], workers int) ([]T, error) {
	if combine == nil || workers < 0 {
		return nil, ErrInvalidArgument
	}
	result := make([]T, len(items)+1)
	result[0] = identity
	if len(items) == 0 {
		return result, nil
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := splitChunks(len(items), workers)

	chunkTotal := make([]T, len(chunks))
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
				result[j+1] = acc
			}
			chunkTotal[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if recorded := errs.Err(); recorded != nil {
			err = recorded
		}
		return nil, &WorkerError{Algorithm: "Prefix", Err: err}
	}

	offset := make([]T, len(chunks))
	running := identity
	for i, total := range chunkTotal {
		offset[i] = running
		running = combine(running, total)
	}

	g2, gctx2 := errgroup.WithContext(ctx)
	for i, c := range chunks {
		i, c := i, c
		if i == 0 {
			continue // chunk 0's offset is identity: its local scan is already final
		}
		g2.Go(func() error {
			off := offset[i]
			for j := c.start; j < c.end; j++ {
				if err := gctx2.Err(); err != nil {
					errs.Set(err)
					return err
				}
				result[j+1] = combine(off, result[j+1])
			}
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		if recorded := errs.Err(); recorded != nil {
			err = recorded
		}
		return nil, &WorkerError{Algorithm: "Prefix", Err: err}
	}

	return result, nil
}
