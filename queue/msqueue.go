// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/spin"
)

type msNode[T any] struct {
	value T
	next  atomic.Pointer[msNode[T]]
}

// LockFreeMS is an unbounded, lock-free FIFO implementing the
// Michael & Scott (1996) algorithm: a singly-linked list with a
// sentinel head node, CAS-linked tail, and a helping step that advances
// a lagging tail pointer on behalf of whichever producer finds it
// stale.
//
// Unlike package ring's SCQ-based queues, LockFreeMS has no fixed
// capacity and allocates one node per element.
type LockFreeMS[T any] struct {
	head atomic.Pointer[msNode[T]]
	tail atomic.Pointer[msNode[T]]
}

// NewLockFreeMS returns an empty lock-free queue.
func NewLockFreeMS[T any]() *LockFreeMS[T] {
	sentinel := &msNode[T]{}
	q := &LockFreeMS[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Push adds value to the tail of the queue. LockFreeMS is unbounded, so
// Push never blocks.
func (q *LockFreeMS[T]) Push(value T) {
	n := &msNode[T]{value: value}
	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			sw.Once()
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				q.tail.CompareAndSwap(tail, n)
				return
			}
		} else {
			// Tail lags behind; help it catch up before retrying.
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// TryPush always succeeds for an unbounded queue.
func (q *LockFreeMS[T]) TryPush(value T) bool {
	q.Push(value)
	return true
}

// TryPop removes and returns the head element without blocking.
func (q *LockFreeMS[T]) TryPop() (T, bool) {
	var zero T
	sw := spin.Wait{}
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			sw.Once()
			continue
		}
		if head == tail {
			if next == nil {
				return zero, false
			}
			// Tail lags behind a non-empty list; help it catch up.
			q.tail.CompareAndSwap(tail, next)
			sw.Once()
			continue
		}
		v := next.value
		if q.head.CompareAndSwap(head, next) {
			return v, true
		}
		sw.Once()
	}
}

// WaitAndPop blocks until an element is available or ctx is done,
// polling with a spin/backoff loop since LockFreeMS has no condition
// variable to wait on.
func (q *LockFreeMS[T]) WaitAndPop(ctx context.Context) (T, error) {
	var zero T
	sw := spin.Wait{}
	for {
		if v, ok := q.TryPop(); ok {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		sw.Once()
	}
}

// Len walks the list under no synchronization and is therefore only an
// approximation under concurrent modification; it exists for parity
// with the rest of the queue family's contract, not as an authoritative
// count.
func (q *LockFreeMS[T]) Len() int {
	n := 0
	for cur := q.head.Load().next.Load(); cur != nil; cur = cur.next.Load() {
		n++
	}
	return n
}

// Empty reports whether the queue currently holds no elements.
func (q *LockFreeMS[T]) Empty() bool {
	head := q.head.Load()
	return head.next.Load() == nil
}
