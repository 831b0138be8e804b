// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command-free, code-free umbrella: cq is organized as a family of
// focused packages rather than one flat package, so this file exists
// only to give the module root a discoverable doc comment.
//
//   - [github.com/arrowlane/cq/ring]: lock-free bounded FIFOs (SPSC,
//     MPSC, SPMC, MPMC): a Lamport ring buffer for SPSC, an FAA/SCQ
//     algorithm for the others.
//   - [github.com/arrowlane/cq/queue]: lock- and condition-variable-based
//     queues — coarse, linked, two-lock, bounded, segmented, and
//     lock-free (Michael–Scott) FIFOs, plus priority, delay, and batch
//     queues.
//   - [github.com/arrowlane/cq/hpq]: hierarchical work-stealing priority
//     queue.
//   - [github.com/arrowlane/cq/parallel]: fork/join algorithms over
//     slices — Accumulate, Prefix, ForEach, MergeSort.
package cq
