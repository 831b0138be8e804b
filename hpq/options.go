// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hpq

import "time"

// Option configures a Queue at construction.
type Option[T any] func(*config[T])

type config[T any] struct {
	less           Less[T]
	localThreshold int
	maxSteal       int
	waitTimeout    time.Duration
}

func defaultConfig[T any](less Less[T]) config[T] {
	return config[T]{
		less:           less,
		localThreshold: 100,
		maxSteal:       10,
		waitTimeout:    100 * time.Millisecond,
	}
}

// WithLocalThreshold sets the local-heap depth at which a worker
// pushes new items to the global heap instead of its own local heap,
// bounding how much work a single worker can hoard. Default 100.
func WithLocalThreshold[T any](n int) Option[T] {
	return func(c *config[T]) { c.localThreshold = n }
}

// WithMaxSteal sets the maximum number of items moved from a victim's
// local heap to the stealer's local heap in one steal attempt. Default
// 10.
func WithMaxSteal[T any](n int) Option[T] {
	return func(c *config[T]) { c.maxSteal = n }
}

// WithWaitTimeout sets how long WaitAndPop sleeps between scans of the
// global heap and other workers' local heaps while waiting for work.
// Default 100ms.
func WithWaitTimeout[T any](d time.Duration) Option[T] {
	return func(c *config[T]) { c.waitTimeout = d }
}
