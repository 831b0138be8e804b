// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"container/heap"
	"context"
	"sync"
)

// Less reports whether a has higher priority than b, i.e. whether a
// should be dequeued first.
type Less[T any] func(a, b T) bool

type priorityItem[T any] struct {
	value T
	seq   uint64
}

type priorityHeap[T any] struct {
	items []priorityItem[T]
	less  Less[T]
}

func (h priorityHeap[T]) Len() int { return len(h.items) }

func (h priorityHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.less(a.value, b.value) {
		return true
	}
	if h.less(b.value, a.value) {
		return false
	}
	return a.seq < b.seq
}

func (h priorityHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *priorityHeap[T]) Push(x any) {
	h.items = append(h.items, x.(priorityItem[T]))
}

func (h *priorityHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Priority is a thread-safe priority queue: elements with higher
// priority (per the Less function, lower argument sorts first) are
// dequeued ahead of lower-priority elements regardless of arrival
// order. Equal-priority elements are dequeued FIFO, broken by a
// monotonic sequence counter attached at Push time.
//
// Optionally bounded: if capacity > 0, Push blocks once the queue holds
// capacity elements.
type Priority[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	h        priorityHeap[T]
	seq      uint64
	capacity int // 0 means unbounded
}

// NewPriority returns an unbounded Priority queue using less to order
// elements.
func NewPriority[T any](less Less[T]) *Priority[T] {
	return newPriority(less, 0)
}

// NewBoundedPriority returns a Priority queue that blocks Push once it
// holds capacity elements. Returns ErrInvalidArgument if capacity is
// not positive.
func NewBoundedPriority[T any](capacity int, less Less[T]) (*Priority[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	return newPriority(less, capacity), nil
}

func newPriority[T any](less Less[T], capacity int) *Priority[T] {
	q := &Priority[T]{h: priorityHeap[T]{less: less}, capacity: capacity}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

func (q *Priority[T]) pushLocked(value T) {
	q.seq++
	heap.Push(&q.h, priorityItem[T]{value: value, seq: q.seq})
}

// Push adds value, blocking if the queue is bounded and full.
func (q *Priority[T]) Push(value T) {
	q.mu.Lock()
	for q.capacity > 0 && q.h.Len() == q.capacity {
		q.notFull.Wait()
	}
	q.pushLocked(value)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// TryPush adds value without blocking. Always succeeds if unbounded;
// returns false if bounded and full.
func (q *Priority[T]) TryPush(value T) bool {
	q.mu.Lock()
	if q.capacity > 0 && q.h.Len() == q.capacity {
		q.mu.Unlock()
		return false
	}
	q.pushLocked(value)
	q.mu.Unlock()
	q.notEmpty.Signal()
	return true
}

func (q *Priority[T]) popLocked() (T, bool) {
	var zero T
	if q.h.Len() == 0 {
		return zero, false
	}
	item := heap.Pop(&q.h).(priorityItem[T])
	return item.value, true
}

// TryPop removes and returns the highest-priority element without
// blocking.
func (q *Priority[T]) TryPop() (T, bool) {
	q.mu.Lock()
	v, ok := q.popLocked()
	q.mu.Unlock()
	if ok {
		q.notFull.Signal()
	}
	return v, ok
}

// WaitAndPop blocks until an element is available or ctx is done.
func (q *Priority[T]) WaitAndPop(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	stop := context.AfterFunc(ctx, q.notEmpty.Broadcast)
	defer stop()

	q.mu.Lock()
	for q.h.Len() == 0 {
		if err := ctx.Err(); err != nil {
			q.mu.Unlock()
			return zero, err
		}
		q.notEmpty.Wait()
	}
	v, _ := q.popLocked()
	q.mu.Unlock()
	q.notFull.Signal()
	return v, nil
}

// Len returns the current number of queued elements.
func (q *Priority[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}

// Empty reports whether the queue currently holds no elements.
func (q *Priority[T]) Empty() bool {
	return q.Len() == 0
}
