// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hpq

import "container/heap"

// Less reports whether a has higher priority than b, i.e. whether a
// should be popped first.
type Less[T any] func(a, b T) bool

type item[T any] struct {
	value T
	seq   uint64
}

// taskHeap is the container/heap.Interface implementation shared by
// both the per-worker local heaps and the global heap. Equal-priority
// items break ties FIFO via a monotonic sequence number, the same
// pattern package queue's Priority type uses.
type taskHeap[T any] struct {
	items []item[T]
	less  Less[T]
}

func (h taskHeap[T]) Len() int { return len(h.items) }

func (h taskHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.less(a.value, b.value) {
		return true
	}
	if h.less(b.value, a.value) {
		return false
	}
	return a.seq < b.seq
}

func (h taskHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *taskHeap[T]) Push(x any) { h.items = append(h.items, x.(item[T])) }

func (h *taskHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

func (h *taskHeap[T]) peek() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return h.items[0].value, true
}

func (h *taskHeap[T]) pop() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	it := heap.Pop(h).(item[T])
	return it.value, true
}

func (h *taskHeap[T]) push(value T, seq uint64) {
	heap.Push(h, item[T]{value: value, seq: seq})
}
