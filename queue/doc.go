// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides the lock- and condition-variable-based half of
// cq's queue family: coarse, linked, two-lock, bounded, segmented, and
// lock-free (Michael–Scott) FIFOs, plus priority, delay, and batch
// queues. Sibling package [github.com/arrowlane/cq/ring] provides the
// lock-free bounded ring family.
//
// Every variant implements as much of the common contract as its
// algorithm allows:
//
//	Push(value)                     // insert; blocks only where documented
//	TryPush(value) bool              // non-blocking insert
//	TryPop() (T, bool)                // non-blocking removal
//	WaitAndPop(ctx) (T, error)         // blocks until an element is available
//	Len() int                          // size, approximate where documented
//	Empty() bool
//
// # Basic usage
//
//	q := queue.NewCoarse[int]()
//	q.Push(1)
//	q.Push(2)
//	v, _ := q.WaitAndPop(context.Background())
//
// # Errors
//
// [ErrInvalidArgument] is returned by constructors given a nonsensical
// capacity (e.g. a bounded queue of size 0). [ErrUnsupported] is returned
// by operations a specific variant's source contract declares
// unsupported — see [Linked.TryPopInto]. Non-blocking operations that
// cannot proceed immediately report it with a false result rather than
// an error. [ErrWouldBlock] and [IsWouldBlock] re-export
// [code.hybscloud.com/iox.ErrWouldBlock], the sentinel package ring
// returns, so callers can check it through either package.
package queue
