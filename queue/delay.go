// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

type delayItem[T any] struct {
	value T
	ready time.Time
	seq   uint64
}

type delayHeap[T any] []delayItem[T]

func (h delayHeap[T]) Len() int { return len(h) }

func (h delayHeap[T]) Less(i, j int) bool {
	if !h[i].ready.Equal(h[j].ready) {
		return h[i].ready.Before(h[j].ready)
	}
	return h[i].seq < h[j].seq
}

func (h delayHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *delayHeap[T]) Push(x any) {
	*h = append(*h, x.(delayItem[T]))
}

func (h *delayHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Delay is a queue whose elements become available only once their
// individual expiry time has elapsed, ordered by expiry (earliest
// first). An element pushed with a later expiry than others already
// queued does not block those others from becoming ready first.
type Delay[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond
	h    delayHeap[T]
	seq  uint64
}

// NewDelay returns an empty Delay queue.
func NewDelay[T any]() *Delay[T] {
	q := &Delay[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push adds value, available for popping once delay has elapsed.
// Delay is unbounded, so Push never blocks.
func (q *Delay[T]) Push(value T, delay time.Duration) {
	q.mu.Lock()
	q.seq++
	heap.Push(&q.h, delayItem[T]{value: value, ready: time.Now().Add(delay), seq: q.seq})
	q.mu.Unlock()
	q.cond.Broadcast()
}

// TryPop removes and returns the earliest element whose expiry has
// already elapsed, without blocking. Returns false if the queue is
// empty or its earliest element is not yet ready.
func (q *Delay[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popReadyLocked()
}

func (q *Delay[T]) popReadyLocked() (T, bool) {
	var zero T
	if q.h.Len() == 0 {
		return zero, false
	}
	if q.h[0].ready.After(time.Now()) {
		return zero, false
	}
	item := heap.Pop(&q.h).(delayItem[T])
	return item.value, true
}

// WaitAndPop blocks until the earliest element becomes ready or ctx is
// done.
func (q *Delay[T]) WaitAndPop(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	stop := context.AfterFunc(ctx, q.cond.Broadcast)
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if v, ok := q.popReadyLocked(); ok {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if q.h.Len() == 0 {
			q.cond.Wait()
			continue
		}
		wait := time.Until(q.h[0].ready)
		if wait <= 0 {
			continue
		}
		q.waitWithTimeout(wait)
	}
}

// waitWithTimeout calls cond.Wait, additionally waking on its own after
// at most d even without an intervening Push, so a newly-ready element
// is noticed as soon as its expiry elapses.
func (q *Delay[T]) waitWithTimeout(d time.Duration) {
	t := time.AfterFunc(d, q.cond.Broadcast)
	defer t.Stop()
	q.cond.Wait()
}

// Len returns the current number of queued elements, ready or not.
func (q *Delay[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}

// Empty reports whether the queue currently holds no elements.
func (q *Delay[T]) Empty() bool {
	return q.Len() == 0
}
