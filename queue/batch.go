// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"sync"
	"time"
)

// Batch accumulates individual pushed elements and releases them to
// consumers in groups, rather than one at a time: WaitAndPopBatch
// returns once either maxSize elements have accumulated or maxWait has
// elapsed since the first element of the pending batch arrived,
// whichever comes first.
type Batch[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	buf     []T
	first   time.Time
	maxSize int
	maxWait time.Duration
}

// NewBatch returns a Batch queue that releases a batch once it holds
// maxSize elements or maxWait has elapsed since the batch's first
// element, whichever is sooner. Returns ErrInvalidArgument if maxSize
// is not positive or maxWait is negative.
func NewBatch[T any](maxSize int, maxWait time.Duration) (*Batch[T], error) {
	if maxSize <= 0 {
		return nil, ErrInvalidArgument
	}
	if maxWait < 0 {
		return nil, ErrInvalidArgument
	}
	q := &Batch[T]{maxSize: maxSize, maxWait: maxWait}
	q.cond = sync.NewCond(&q.mu)
	return q, nil
}

// Push adds value to the pending batch. Batch is unbounded, so Push
// never blocks.
func (q *Batch[T]) Push(value T) {
	q.mu.Lock()
	if len(q.buf) == 0 {
		q.first = time.Now()
	}
	q.buf = append(q.buf, value)
	// Wake waiters when the batch fills, and also on its first element
	// so a waiter blocked on an empty batch starts its maxWait timer.
	wake := len(q.buf) == 1 || len(q.buf) >= q.maxSize
	q.mu.Unlock()
	if wake {
		q.cond.Broadcast()
	}
}

// TryPush always succeeds for an unbounded queue.
func (q *Batch[T]) TryPush(value T) bool {
	q.Push(value)
	return true
}

// TryPopBatch removes and returns the pending batch without blocking,
// regardless of whether maxSize or maxWait have been reached. Returns
// false if no elements are pending.
func (q *Batch[T]) TryPopBatch() ([]T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

func (q *Batch[T]) popLocked() ([]T, bool) {
	if len(q.buf) == 0 {
		return nil, false
	}
	batch := q.buf
	q.buf = nil
	return batch, true
}

// WaitAndPopBatch blocks until the pending batch reaches maxSize, until
// maxWait has elapsed since the batch's first element, or until ctx is
// done, whichever comes first, then returns the accumulated batch.
func (q *Batch[T]) WaitAndPopBatch(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stop := context.AfterFunc(ctx, q.cond.Broadcast)
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if len(q.buf) >= q.maxSize {
			batch, _ := q.popLocked()
			return batch, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(q.buf) == 0 {
			q.cond.Wait()
			continue
		}
		remaining := q.maxWait - time.Since(q.first)
		if remaining <= 0 {
			batch, _ := q.popLocked()
			return batch, nil
		}
		q.waitWithTimeout(remaining)
	}
}

func (q *Batch[T]) waitWithTimeout(d time.Duration) {
	t := time.AfterFunc(d, q.cond.Broadcast)
	defer t.Stop()
	q.cond.Wait()
}

// Len returns the number of elements in the pending batch.
func (q *Batch[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Empty reports whether the pending batch currently holds no elements.
func (q *Batch[T]) Empty() bool {
	return q.Len() == 0
}
