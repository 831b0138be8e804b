// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package parallel provides fork/join algorithms over slices:
// associative reduction (Accumulate), prefix scan (Prefix), per-element
// application (ForEach, in static and dynamic-load-balanced forms), and
// merge sort (MergeSort).
//
// Every algorithm splits its input across a bounded number of worker
// goroutines via golang.org/x/sync/errgroup, and every worker's error is
// funneled through a single first-error-wins cell (internal/workerr) so
// the caller gets one deterministic [WorkerError] rather than a data
// race between whichever goroutines happened to fail.
//
// # Identity elements
//
// Accumulate and Prefix require either an explicit identity value for
// their combining function, or one of the provided identity-trait
// helpers ([AdditionIdentity], [MultiplicationIdentity],
// [ConcatIdentity]) appropriate to the element type, so an empty input
// slice has a well-defined result instead of a panic or a zero-value
// guess. Accumulate additionally takes a separate initial value: each
// worker's block folds from identity, and only the final join across
// workers folds from the initial value, so the caller's initial value
// is applied exactly once no matter how many workers ran. Prefix
// returns one more element than its input, with the identity element
// at index 0.
package parallel
