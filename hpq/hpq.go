// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hpq

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by Worker operations once the owning Queue has
// been closed.
var ErrClosed = errors.New("hpq: queue closed")

// Stats reports cumulative activity counters for a Queue. All fields
// are monotonically increasing snapshots, safe to read concurrently
// with ongoing Push/TryPop/steal activity.
type Stats struct {
	Pushes        uint64
	Pops          uint64
	StealAttempts uint64
	StealsWon     uint64
}

// Queue is a hierarchical work-stealing priority queue shared by any
// number of Worker handles.
type Queue[T any] struct {
	cfg config[T]
	seq atomic.Uint64

	globalMu sync.Mutex
	global   taskHeap[T]

	nonEmptyMu sync.Mutex
	nonEmpty   map[*localHeap[T]]struct{}

	notifyMu sync.Mutex
	notify   *sync.Cond

	closed atomic.Bool

	pushes        atomic.Uint64
	pops          atomic.Uint64
	stealAttempts atomic.Uint64
	stealsWon     atomic.Uint64
}

// Stats returns a snapshot of the queue's cumulative activity counters,
// primarily useful for observing how often TryPop/WaitAndPop had to
// fall back to stealing rather than finding work in a worker's own
// local heap or the global heap.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Pushes:        q.pushes.Load(),
		Pops:          q.pops.Load(),
		StealAttempts: q.stealAttempts.Load(),
		StealsWon:     q.stealsWon.Load(),
	}
}

type localHeap[T any] struct {
	mu sync.Mutex
	h  taskHeap[T]
}

// Worker is a single goroutine's handle on a Queue. It is not safe for
// concurrent use by more than one goroutine — callers that want
// multiple concurrent producers/consumers should call NewWorker once
// per goroutine.
type Worker[T any] struct {
	q     *Queue[T]
	local *localHeap[T]
}

// New returns a Queue ordering elements by less (higher priority pops
// first).
func New[T any](less Less[T], opts ...Option[T]) *Queue[T] {
	cfg := defaultConfig(less)
	for _, opt := range opts {
		opt(&cfg)
	}
	q := &Queue[T]{
		cfg:      cfg,
		global:   taskHeap[T]{less: less},
		nonEmpty: make(map[*localHeap[T]]struct{}),
	}
	q.notify = sync.NewCond(&q.notifyMu)
	return q
}

// NewWorker returns a new worker with its own local heap. The heap
// joins the queue's set of stealable non-empty heaps on its first Push.
func (q *Queue[T]) NewWorker() *Worker[T] {
	return &Worker[T]{
		q:     q,
		local: &localHeap[T]{h: taskHeap[T]{less: q.cfg.less}},
	}
}

// Close marks the queue closed, waking every worker blocked in
// WaitAndPop with ErrClosed. Items already queued are not discarded;
// TryPop continues to return them after Close.
func (q *Queue[T]) Close() {
	q.closed.Store(true)
	q.notify.Broadcast()
}

func (q *Queue[T]) markNonEmpty(lh *localHeap[T]) {
	q.nonEmptyMu.Lock()
	q.nonEmpty[lh] = struct{}{}
	q.nonEmptyMu.Unlock()
}

func (q *Queue[T]) markEmptyIfStillEmpty(lh *localHeap[T]) {
	lh.mu.Lock()
	empty := lh.h.Len() == 0
	lh.mu.Unlock()
	if !empty {
		return
	}
	q.nonEmptyMu.Lock()
	delete(q.nonEmpty, lh)
	q.nonEmptyMu.Unlock()
}

// Push adds value to the worker's local heap, or to the shared global
// heap once the local heap already holds the queue's local threshold
// of items (WithLocalThreshold), so one worker cannot hoard unbounded work.
func (w *Worker[T]) Push(value T) {
	seq := w.q.seq.Add(1)

	w.local.mu.Lock()
	useLocal := w.local.h.Len() < w.q.cfg.localThreshold
	if useLocal {
		w.local.h.push(value, seq)
	}
	w.local.mu.Unlock()

	if useLocal {
		w.q.markNonEmpty(w.local)
	} else {
		w.q.globalMu.Lock()
		w.q.global.push(value, seq)
		w.q.globalMu.Unlock()
	}

	w.q.notify.Broadcast()
	w.q.pushes.Add(1)
}

// TryPop removes and returns the worker's next item without blocking:
// first from its own local heap, then from the global heap, then via a
// single steal attempt from another worker's local heap.
func (w *Worker[T]) TryPop() (T, bool) {
	if v, ok := w.popLocal(); ok {
		w.q.pops.Add(1)
		return v, true
	}
	if v, ok := w.popGlobal(); ok {
		w.q.pops.Add(1)
		return v, true
	}
	w.q.stealAttempts.Add(1)
	v, ok := w.steal()
	if ok {
		w.q.stealsWon.Add(1)
		w.q.pops.Add(1)
	}
	return v, ok
}

func (w *Worker[T]) popLocal() (T, bool) {
	w.local.mu.Lock()
	v, ok := w.local.h.pop()
	w.local.mu.Unlock()
	if ok {
		w.q.markEmptyIfStillEmpty(w.local)
	}
	return v, ok
}

func (w *Worker[T]) popGlobal() (T, bool) {
	w.q.globalMu.Lock()
	defer w.q.globalMu.Unlock()
	return w.q.global.pop()
}

// steal implements the queue's lock ordering: nonEmptyMu, then
// globalMu (to recheck after sampling, since the global heap may have
// gained work while we scanned), then the victim's local lock alone to
// drain a batch, then — after releasing the victim's lock — our own, to
// push it. Self and victim local locks are never held simultaneously:
// a fixed victim-then-self order per steal does not prevent deadlock
// when two workers pick each other as victim concurrently (A holds
// B.mu waiting for A.mu while B holds A.mu waiting for B.mu); draining
// into a temporary slice under victim.mu alone, releasing it, and only
// then locking local.mu removes the cycle entirely.
func (w *Worker[T]) steal() (T, bool) {
	var zero T

	w.q.nonEmptyMu.Lock()
	var victim *localHeap[T]
	for lh := range w.q.nonEmpty {
		if lh == w.local {
			continue
		}
		victim = lh
		break // map iteration order is randomized: this is the "sampled victim", not the global max
	}
	w.q.nonEmptyMu.Unlock()

	if victim == nil {
		return w.popGlobal()
	}

	w.q.globalMu.Lock()
	if v, ok := w.q.global.pop(); ok {
		w.q.globalMu.Unlock()
		return v, true
	}
	w.q.globalMu.Unlock()

	victim.mu.Lock()
	stolen := make([]T, 0, w.q.cfg.maxSteal)
	for len(stolen) < w.q.cfg.maxSteal {
		v, ok := victim.h.pop()
		if !ok {
			break
		}
		stolen = append(stolen, v)
	}
	victim.mu.Unlock()
	moved := len(stolen)

	if moved > 0 {
		w.local.mu.Lock()
		for _, v := range stolen {
			w.local.h.push(v, w.q.seq.Add(1))
		}
		w.local.mu.Unlock()
		w.q.markNonEmpty(w.local)
		w.q.markEmptyIfStillEmpty(victim)
	}
	if moved == 0 {
		return zero, false
	}
	return w.popLocal()
}

// WaitAndPop blocks until an item becomes available anywhere in the
// queue, ctx is done, or the queue is closed. It polls TryPop, sleeping
// up to WithWaitTimeout between attempts, woken early by Push or Close.
func (w *Worker[T]) WaitAndPop(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	stop := context.AfterFunc(ctx, w.q.notify.Broadcast)
	defer stop()

	for {
		if v, ok := w.TryPop(); ok {
			return v, nil
		}
		if w.q.closed.Load() {
			return zero, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		w.waitOnce()
	}
}

func (w *Worker[T]) waitOnce() {
	timer := time.AfterFunc(w.q.cfg.waitTimeout, w.q.notify.Broadcast)
	defer timer.Stop()

	w.q.notifyMu.Lock()
	w.q.notify.Wait()
	w.q.notifyMu.Unlock()
}

// Len returns the number of items currently in the worker's local
// heap. It does not include items in the global heap or other
// workers' local heaps.
func (w *Worker[T]) Len() int {
	w.local.mu.Lock()
	defer w.local.mu.Unlock()
	return w.local.h.Len()
}
