// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "context"

// Queue is the common queue contract. Not every variant in this package
// implements it — Delay takes a delay in Push and Batch pops whole
// batches, so neither satisfies Queue.
type Queue[T any] interface {
	Pusher[T]
	Popper[T]
	Len() int
	Empty() bool
}

// Pusher adds elements to a queue.
type Pusher[T any] interface {
	// Push adds value, blocking if the variant is bounded and full.
	Push(value T)
	// TryPush adds value without blocking. Returns false if it could
	// not be added immediately (bounded and full).
	TryPush(value T) bool
}

// Popper removes elements from a queue.
type Popper[T any] interface {
	// TryPop removes and returns an element without blocking. The
	// second return value is false if the queue was empty.
	TryPop() (T, bool)
	// WaitAndPop blocks until an element is available or ctx is done.
	WaitAndPop(ctx context.Context) (T, error)
}
