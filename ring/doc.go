// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring provides lock-free bounded FIFO queues.
//
// The package offers four variants, one per producer/consumer constraint.
// MPSC, SPMC and MPMC are built on the FAA/SCQ (Scalable Circular Queue)
// algorithm described by Nikolaev (DISC 2019); SPSC is a Lamport ring
// buffer:
//
//   - SPSC: Single-Producer Single-Consumer (Lamport ring buffer)
//   - MPSC: Multi-Producer Single-Consumer
//   - SPMC: Single-Producer Multi-Consumer
//   - MPMC: Multi-Producer Multi-Consumer
//
// MPMC is the "lock-free bounded ring" queue family member this module's
// specification names; SPSC/MPSC/SPMC are additional specializations of
// the same contract. SPMC is wired directly into package parallel's
// dynamic for-each task distribution (one dispatcher, many worker
// goroutines pulling element indices).
//
// # Basic usage
//
//	q := ring.NewMPMC[int](1024)
//
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // queue is full, back off and retry
//	}
//
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
//
// # Capacity
//
// Capacity rounds up to the next power of 2; minimum is 2. Panics if
// capacity < 2.
//
// # Graceful shutdown
//
// MPMC and SPMC use a threshold mechanism to bound worst-case
// dequeue retries under producer/consumer imbalance (livelock
// prevention). This can cause Dequeue to return [ErrWouldBlock] even
// though items remain, until producer activity resets the threshold.
// Once producers have finished, call Drain via the [Drainer] interface
// so consumers can fully drain the queue without threshold blocking.
// SPSC and MPSC have no threshold mechanism and do not implement Drainer.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for the shared
// [ErrWouldBlock] sentinel, [code.hybscloud.com/atomix] for atomic
// primitives with explicit memory ordering, and [code.hybscloud.com/spin]
// for CPU pause instructions during CAS retry loops.
package ring
