// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
)

const segmentSize = 128

// segment is a fixed-size array of elements, linked to the next
// segment once full. write is an atomix counter so consumers, holding
// only headMu, can read a segment's fill level that producers publish
// under tailMu.
type segment[T any] struct {
	buf   [segmentSize]T
	write atomix.Int64
	next  *segment[T]
}

// Segmented is an unbounded FIFO that allocates storage in fixed-size
// segments rather than growing a single slice or linking one node per
// element. This amortizes allocation cost relative to Linked while
// keeping head and tail contention scoped to the segment currently
// being drained or filled, independent of overall queue length.
type Segmented[T any] struct {
	headMu  sync.Mutex
	tailMu  sync.Mutex
	cond    *sync.Cond
	head    *segment[T]
	headIdx int
	tail    *segment[T]
	len     int64Counter
}

// NewSegmented returns an empty Segmented queue.
func NewSegmented[T any]() *Segmented[T] {
	seg := &segment[T]{}
	q := &Segmented[T]{head: seg, tail: seg}
	q.cond = sync.NewCond(&q.headMu)
	return q
}

// Push adds value to the tail segment, allocating a new segment when
// the current one fills. Segmented is unbounded, so Push never blocks
// on capacity.
func (q *Segmented[T]) Push(value T) {
	q.tailMu.Lock()
	seg := q.tail
	idx := seg.write.LoadRelaxed()
	if int(idx) == segmentSize {
		seg = &segment[T]{}
		q.tail.next = seg
		q.tail = seg
		idx = 0
	}
	seg.buf[idx] = value
	seg.write.StoreRelease(idx + 1)
	q.tailMu.Unlock()
	q.len.add(1)

	q.headMu.Lock()
	q.cond.Broadcast()
	q.headMu.Unlock()
}

// TryPush always succeeds for an unbounded queue.
func (q *Segmented[T]) TryPush(value T) bool {
	q.Push(value)
	return true
}

// TryPop removes and returns the head element without blocking.
func (q *Segmented[T]) TryPop() (T, bool) {
	q.headMu.Lock()
	defer q.headMu.Unlock()
	return q.popLocked()
}

func (q *Segmented[T]) popLocked() (T, bool) {
	var zero T
	for {
		filled := int(q.head.write.LoadAcquire())
		if q.headIdx < filled {
			v := q.head.buf[q.headIdx]
			q.head.buf[q.headIdx] = zero
			q.headIdx++
			q.len.add(-1)
			return v, true
		}
		if q.headIdx == segmentSize && q.head.next != nil {
			q.head = q.head.next
			q.headIdx = 0
			continue
		}
		return zero, false
	}
}

// WaitAndPop blocks until an element is available or ctx is done.
func (q *Segmented[T]) WaitAndPop(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	stop := context.AfterFunc(ctx, q.cond.Broadcast)
	defer stop()

	q.headMu.Lock()
	defer q.headMu.Unlock()
	for {
		if v, ok := q.popLocked(); ok {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.cond.Wait()
	}
}

// Len returns the current number of queued elements.
func (q *Segmented[T]) Len() int {
	return q.len.get()
}

// Empty reports whether the queue currently holds no elements.
func (q *Segmented[T]) Empty() bool {
	return q.Len() == 0
}
