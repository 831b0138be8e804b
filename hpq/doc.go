// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hpq provides a hierarchical work-stealing priority queue:
// each worker owns a local max-heap it can push to and pop from without
// contending with any other worker, backed by a shared global heap for
// overflow and a best-effort work-stealing pass when a worker's local
// heap runs dry.
//
// # Basic usage
//
//	q := hpq.New[int](func(a, b int) bool { return a > b })
//	defer q.Close()
//	w := q.NewWorker()
//
//	w.Push(5)
//	v, ok := w.TryPop()
//
// # Ordering
//
// Within a single worker's local heap, and within the global heap,
// ordering is exact: higher-priority items (per Less) pop first, FIFO
// among equal priorities. Across the whole queue ordering is only
// approximate — a worker that pops from its own local heap before
// checking the global heap or stealing may dequeue an item the global
// heap's front disagrees with. This is the queue family's deliberate
// scalability trade: exact global ordering would require a single lock
// shared by every worker, defeating the point of per-worker heaps.
// Likewise, a steal always takes from one sampled victim's current
// front, not from whichever worker holds the true queue-wide maximum.
//
// # Dependencies
//
// Built entirely on container/heap and sync; there is no lock-free or
// third-party primitive that fits a structure whose whole purpose is
// hierarchical locking, so this package is standard-library-only by
// design.
package hpq
