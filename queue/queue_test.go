// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arrowlane/cq/queue"
)

func TestCoarseFIFO(t *testing.T) {
	q := queue.NewCoarse[int]()
	for i := range 5 {
		q.Push(i)
	}
	if q.Len() != 5 {
		t.Fatalf("Len: got %d, want 5", q.Len())
	}
	for i := range 5 {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop(%d): got (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
	if !q.Empty() {
		t.Fatalf("expected empty queue")
	}
}

func TestCoarseWaitAndPopTimeout(t *testing.T) {
	q := queue.NewCoarse[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := q.WaitAndPop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WaitAndPop on empty queue: got %v, want DeadlineExceeded", err)
	}
}

func TestCoarseWaitAndPopWakesOnPush(t *testing.T) {
	q := queue.NewCoarse[int]()
	done := make(chan int, 1)
	go func() {
		v, err := q.WaitAndPop(context.Background())
		if err != nil {
			t.Errorf("WaitAndPop: %v", err)
			return
		}
		done <- v
	}()
	time.Sleep(5 * time.Millisecond)
	q.Push(42)
	select {
	case v := <-done:
		if v != 42 {
			t.Fatalf("got %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndPop never woke up")
	}
}

func TestLinkedTryPopIntoUnsupported(t *testing.T) {
	q := queue.NewLinked[int]()
	var dst int
	if err := q.TryPopInto(&dst); !errors.Is(err, queue.ErrUnsupported) {
		t.Fatalf("TryPopInto: got %v, want ErrUnsupported", err)
	}
}

func TestLinkedFIFO(t *testing.T) {
	q := queue.NewLinked[string]()
	for _, s := range []string{"a", "b", "c"} {
		q.Push(s)
	}
	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.TryPop()
		if !ok || got != want {
			t.Fatalf("TryPop: got (%q, %v), want (%q, true)", got, ok, want)
		}
	}
}

func TestTwoLockConcurrentPushNoLoss(t *testing.T) {
	q := queue.NewTwoLock[int]()
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			q.Push(v)
		}(i)
	}
	wg.Wait()
	if q.Len() != 100 {
		t.Fatalf("Len: got %d, want 100", q.Len())
	}
	seen := make(map[int]bool)
	for range 100 {
		v, ok := q.TryPop()
		if !ok {
			t.Fatal("expected 100 elements")
		}
		seen[v] = true
	}
	if len(seen) != 100 {
		t.Fatalf("got %d distinct values, want 100", len(seen))
	}
}

func TestBoundedBackpressure(t *testing.T) {
	q, err := queue.NewBounded[int](2)
	if err != nil {
		t.Fatalf("NewBounded: %v", err)
	}
	if !q.TryPush(1) || !q.TryPush(2) {
		t.Fatal("expected first two pushes to succeed")
	}
	if q.TryPush(3) {
		t.Fatal("expected push into full bounded queue to fail")
	}

	pushed := make(chan struct{})
	go func() {
		q.Push(3) // blocks until a slot frees up
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Push on full bounded queue returned before a slot freed")
	case <-time.After(20 * time.Millisecond):
	}

	v, ok := q.TryPop()
	if !ok || v != 1 {
		t.Fatalf("TryPop: got (%d, %v), want (1, true)", v, ok)
	}

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("blocked Push never unblocked after a slot freed")
	}
}

func TestSegmentedAcrossBoundary(t *testing.T) {
	q := queue.NewSegmented[int]()
	const n = segmentedTestSize
	for i := range n {
		q.Push(i)
	}
	for i := range n {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop(%d): got (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

// segmentedTestSize exceeds package queue's internal segment size so
// the test exercises the segment-boundary crossover in both Push and
// TryPop.
const segmentedTestSize = 300

func TestLockFreeMSConcurrent(t *testing.T) {
	q := queue.NewLockFreeMS[int]()
	const producers = 8
	const perProducer = 500
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := range perProducer {
				q.Push(base + i)
			}
		}(p * perProducer)
	}
	wg.Wait()

	total := producers * perProducer
	seen := make([]bool, total)
	for range total {
		v, ok := q.TryPop()
		if !ok {
			t.Fatalf("expected %d elements, ran out early", total)
		}
		if seen[v] {
			t.Fatalf("value %d popped twice", v)
		}
		seen[v] = true
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("expected queue to be empty")
	}
}

func TestPriorityOrdering(t *testing.T) {
	q := queue.NewPriority[int](func(a, b int) bool { return a > b })
	for _, v := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		q.Push(v)
	}
	want := []int{9, 6, 5, 4, 3, 2, 1, 1}
	for _, w := range want {
		v, ok := q.TryPop()
		if !ok || v != w {
			t.Fatalf("TryPop: got (%d, %v), want (%d, true)", v, ok, w)
		}
	}
}

func TestPriorityFIFOTiebreak(t *testing.T) {
	type job struct {
		name     string
		priority int
	}
	q := queue.NewPriority[job](func(a, b job) bool { return a.priority > b.priority })
	q.Push(job{"first", 5})
	q.Push(job{"second", 5})
	q.Push(job{"third", 5})

	for _, want := range []string{"first", "second", "third"} {
		v, _ := q.TryPop()
		if v.name != want {
			t.Fatalf("got %q, want %q", v.name, want)
		}
	}
}

func TestBoundedPriorityTryPushFailsWhenFull(t *testing.T) {
	q, err := queue.NewBoundedPriority[int](1, func(a, b int) bool { return a < b })
	if err != nil {
		t.Fatalf("NewBoundedPriority: %v", err)
	}
	q.Push(1)
	if q.TryPush(2) {
		t.Fatal("expected TryPush on full bounded priority queue to fail")
	}
}

func TestDelayOrdering(t *testing.T) {
	q := queue.NewDelay[string]()
	q.Push("late", 60*time.Millisecond)
	q.Push("early", 10*time.Millisecond)
	q.Push("mid", 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, want := range []string{"early", "mid", "late"} {
		v, err := q.WaitAndPop(ctx)
		if err != nil {
			t.Fatalf("WaitAndPop: %v", err)
		}
		if v != want {
			t.Fatalf("got %q, want %q", v, want)
		}
	}
}

func TestDelayTryPopNotYetReady(t *testing.T) {
	q := queue.NewDelay[int]()
	q.Push(1, time.Hour)
	if _, ok := q.TryPop(); ok {
		t.Fatal("expected TryPop to report not-ready element as absent")
	}
}

func TestBatchFlushOnSize(t *testing.T) {
	q, err := queue.NewBatch[int](3, time.Hour)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	q.Push(1)
	q.Push(2)
	q.Push(3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	batch, err := q.WaitAndPopBatch(ctx)
	if err != nil {
		t.Fatalf("WaitAndPopBatch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("got batch of %d, want 3", len(batch))
	}
}

func TestBatchFlushOnTimeout(t *testing.T) {
	q, err := queue.NewBatch[int](100, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	q.Push(1)
	q.Push(2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	batch, err := q.WaitAndPopBatch(ctx)
	if err != nil {
		t.Fatalf("WaitAndPopBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("got batch of %d, want 2", len(batch))
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("batch flushed too early: %v", elapsed)
	}
}

func TestBoundedConstructorsRejectNonPositive(t *testing.T) {
	if _, err := queue.NewBounded[int](0); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBounded(0): got %v, want ErrInvalidArgument", err)
	}
	if _, err := queue.NewBounded[int](-1); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBounded(-1): got %v, want ErrInvalidArgument", err)
	}
	if _, err := queue.NewBoundedPriority[int](0, func(a, b int) bool { return a < b }); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBoundedPriority(0): got %v, want ErrInvalidArgument", err)
	}
	if _, err := queue.NewBatch[int](0, time.Second); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBatch(maxSize=0): got %v, want ErrInvalidArgument", err)
	}
	if _, err := queue.NewBatch[int](1, -time.Second); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBatch(maxWait<0): got %v, want ErrInvalidArgument", err)
	}
}
